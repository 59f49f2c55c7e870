package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"smartbudget/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func validData() core.TransactionData {
	return core.TransactionData{
		Amount:      core.Money{Cents: 1050},
		Date:        core.NewDate(2025, 11, 5),
		Category:    "food",
		Type:        core.Expense,
		Description: "groceries",
	}
}

func TestAddAndLoadTransaction(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx, err := repo.AddTransaction(ctx, validData())
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if tx.ID == "" {
		t.Fatalf("no id assigned")
	}
	if tx.CreatedAt.IsZero() || !tx.CreatedAt.Equal(tx.UpdatedAt) {
		t.Fatalf("timestamps = %v / %v", tx.CreatedAt, tx.UpdatedAt)
	}

	loaded := repo.LoadTransactions(ctx)
	if len(loaded) != 1 {
		t.Fatalf("loaded %d transactions", len(loaded))
	}
	got := loaded[0]
	if got.ID != tx.ID || got.Amount.Cents != 1050 || got.Category != "food" {
		t.Fatalf("round trip gave %+v", got)
	}
	if !got.Date.Equal(core.NewDate(2025, 11, 5)) {
		t.Fatalf("date = %s", got.Date)
	}
}

func TestAddTransactionRejectsInvalid(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	data := validData()
	data.Amount = core.Money{}
	_, err := repo.AddTransaction(ctx, data)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
	if _, ok := verr.Fields["amount"]; !ok {
		t.Fatalf("fields = %v", verr.Fields)
	}
	if got := repo.LoadTransactions(ctx); len(got) != 0 {
		t.Fatalf("invalid transaction was persisted")
	}
}

func TestUpdateTransaction(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx, err := repo.AddTransaction(ctx, validData())
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	newAmount := core.Money{Cents: 9999}
	newDesc := "monthly groceries"
	updated, err := repo.UpdateTransaction(ctx, tx.ID, core.TransactionPatch{
		Amount:      &newAmount,
		Description: &newDesc,
	})
	if err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	if updated.ID != tx.ID || !updated.CreatedAt.Equal(tx.CreatedAt) {
		t.Fatalf("identity changed: %+v", updated)
	}
	if updated.Amount.Cents != 9999 || updated.Description != "monthly groceries" {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Category != "food" {
		t.Fatalf("unpatched field changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Fatalf("updatedAt went backwards")
	}

	loaded := repo.LoadTransactions(ctx)
	if len(loaded) != 1 || loaded[0].Amount.Cents != 9999 {
		t.Fatalf("update not persisted: %+v", loaded)
	}
}

func TestUpdateTransactionNotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.UpdateTransaction(context.Background(), "missing", core.TransactionPatch{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestUpdateTransactionRejectsInvalidMerge(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx, err := repo.AddTransaction(ctx, validData())
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	// Patching the category to an income id while the type stays expense
	// must fail validation of the merged record.
	badCategory := "salary"
	_, err = repo.UpdateTransaction(ctx, tx.ID, core.TransactionPatch{Category: &badCategory})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}

	// Stored record untouched.
	loaded := repo.LoadTransactions(ctx)
	if len(loaded) != 1 || loaded[0].Category != "food" {
		t.Fatalf("failed update mutated the store: %+v", loaded)
	}
}

func TestDeleteTransaction(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	tx, err := repo.AddTransaction(ctx, validData())
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	found, err := repo.DeleteTransaction(ctx, tx.ID)
	if err != nil || !found {
		t.Fatalf("DeleteTransaction = %v, %v", found, err)
	}
	if got := repo.LoadTransactions(ctx); len(got) != 0 {
		t.Fatalf("transaction still present after delete")
	}

	// Deleting again is a reported no-op, not an error.
	found, err = repo.DeleteTransaction(ctx, tx.ID)
	if err != nil {
		t.Fatalf("second delete errored: %v", err)
	}
	if found {
		t.Fatalf("second delete reported found")
	}
}

func TestSaveTransactionsReplacesWholesale(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.AddTransaction(ctx, validData()); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	now := time.Now().UTC()
	replacement := []core.Transaction{
		{
			ID:        "r1",
			Amount:    core.Money{Cents: 500},
			Date:      core.NewDate(2025, 11, 1),
			Category:  "transport",
			Type:      core.Expense,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        "r2",
			Amount:    core.Money{Cents: 100000},
			Date:      core.NewDate(2025, 11, 2),
			Category:  "salary",
			Type:      core.Income,
			CreatedAt: now.Add(time.Second),
			UpdatedAt: now.Add(time.Second),
		},
	}

	res := repo.SaveTransactions(ctx, replacement)
	if !res.Success {
		t.Fatalf("SaveTransactions failed: %s", res.Error)
	}

	loaded := repo.LoadTransactions(ctx)
	if len(loaded) != 2 {
		t.Fatalf("loaded %d transactions, want 2", len(loaded))
	}
	// Load order follows created_at.
	if loaded[0].ID != "r1" || loaded[1].ID != "r2" {
		t.Fatalf("order = %s, %s", loaded[0].ID, loaded[1].ID)
	}
}

func TestLoadTransactionsDropsInvalidRows(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.AddTransaction(ctx, validData()); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	// Write a row that passes the schema but fails field validation, the
	// way an older release or a manual edit could leave it.
	stamp := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO transactions (id, amount_cents, date, category, type, description, created_at, updated_at)
		VALUES ('bad', 0, '2025-11-01', 'food', 'expense', '', ?, ?)`, stamp, stamp)
	if err != nil {
		t.Fatalf("insert bad row: %v", err)
	}

	loaded := repo.LoadTransactions(ctx)
	if len(loaded) != 1 {
		t.Fatalf("loaded %d transactions, want 1", len(loaded))
	}
	if loaded[0].ID == "bad" {
		t.Fatalf("invalid row survived the load")
	}
}

func TestSettingsDefaultsAndRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Nothing stored: documented defaults.
	s := repo.LoadSettings(ctx)
	if s.SelectedPeriod == nil || s.SelectedPeriod.Type != core.PeriodThisMonth {
		t.Fatalf("default settings = %+v", s)
	}

	custom := core.CustomPeriod(core.NewDate(2025, 11, 1), core.NewDate(2025, 11, 15))
	repo.SaveSettings(ctx, core.Settings{SelectedPeriod: &custom})

	s = repo.LoadSettings(ctx)
	if s.SelectedPeriod == nil || s.SelectedPeriod.Type != core.PeriodCustom {
		t.Fatalf("reloaded settings = %+v", s)
	}
	if s.SelectedPeriod.Label != "Nov 1-15, 2025" {
		t.Fatalf("label = %q", s.SelectedPeriod.Label)
	}

	// Saving an empty partial keeps the stored value.
	repo.SaveSettings(ctx, core.Settings{})
	s = repo.LoadSettings(ctx)
	if s.SelectedPeriod == nil || s.SelectedPeriod.Type != core.PeriodCustom {
		t.Fatalf("empty partial clobbered settings: %+v", s)
	}
}

func TestIsQuotaError(t *testing.T) {
	if !isQuotaError(errors.New("step: database or disk is full (13)")) {
		t.Fatalf("quota error not detected")
	}
	if isQuotaError(errors.New("no such table")) {
		t.Fatalf("generic error classified as quota")
	}
	if isQuotaError(nil) {
		t.Fatalf("nil classified as quota")
	}
}
