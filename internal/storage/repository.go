// Package storage implements the persistence collaborator on SQLite. It is
// the only fallible boundary in the system: loads degrade to empty or
// default state, saves report structured success or failure, and only
// targeted mutations (add, update) return errors to the caller.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"smartbudget/internal/core"
	applog "smartbudget/internal/log"
	"smartbudget/internal/validate"
)

const settingsKey = "settings"

// Save failure messages exposed to the UI. The quota message is
// distinguishable so the frontend can suggest a concrete remedy.
const (
	msgQuotaExceeded = "Storage limit reached. Please delete old transactions."
	msgSaveFailed    = "Failed to save transactions."
)

// ErrNotFound is returned when an update references an unknown id.
var ErrNotFound = errors.New("transaction not found")

// ValidationError reports which fields made a transaction unpersistable.
type ValidationError struct {
	Fields validate.FieldErrors
}

func (e *ValidationError) Error() string {
	return "invalid transaction: " + e.Fields.Message()
}

// SaveResult is the outcome of a bulk save. Error carries a user-facing
// message when Success is false.
type SaveResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SQLiteRepository persists transactions and the settings blob in a local
// SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if needed) the database at dbPath and
// runs pending migrations.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// LoadTransactions returns every stored transaction that still passes full
// field validation. Rows that fail to scan or validate are dropped with a
// warning, never repaired, and a broken store yields an empty list rather
// than an error.
func (r *SQLiteRepository) LoadTransactions(ctx context.Context) []core.Transaction {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, amount_cents, date, category, type, description, created_at, updated_at
		FROM transactions
		ORDER BY created_at`)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load transactions, returning empty list", applog.FieldError, err)
		return []core.Transaction{}
	}
	defer rows.Close()

	now := time.Now()
	txs := make([]core.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			slog.WarnContext(ctx, "Dropping unreadable transaction row", applog.FieldError, err)
			continue
		}
		if fieldErrs := validate.Transaction(tx, now); len(fieldErrs) > 0 {
			slog.WarnContext(ctx, "Dropping invalid stored transaction",
				"id", tx.ID, "errors", fieldErrs.Message())
			continue
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		slog.WarnContext(ctx, "Transaction row iteration failed", applog.FieldError, err)
	}
	return txs
}

// SaveTransactions replaces the stored list wholesale. It never returns an
// error: the result distinguishes storage exhaustion from generic failure so
// the UI can offer the right remedy.
func (r *SQLiteRepository) SaveTransactions(ctx context.Context, txs []core.Transaction) SaveResult {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return saveFailure(ctx, err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return saveFailure(ctx, err)
	}
	for _, tx := range txs {
		if err := insertTransaction(ctx, dbTx, tx); err != nil {
			return saveFailure(ctx, err)
		}
	}
	if err := dbTx.Commit(); err != nil {
		return saveFailure(ctx, err)
	}
	return SaveResult{Success: true}
}

func saveFailure(ctx context.Context, err error) SaveResult {
	slog.ErrorContext(ctx, "Failed to save transactions", applog.FieldError, err)
	if isQuotaError(err) {
		return SaveResult{Success: false, Error: msgQuotaExceeded}
	}
	return SaveResult{Success: false, Error: msgSaveFailed}
}

// isQuotaError detects SQLITE_FULL, the local-storage analogue of a quota
// exceeded failure.
func isQuotaError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "database or disk is full")
}

// AddTransaction validates the candidate, assigns a fresh id and creation
// timestamps, and persists it. Invalid data is never written.
func (r *SQLiteRepository) AddTransaction(ctx context.Context, data core.TransactionData) (core.Transaction, error) {
	now := time.Now().UTC()
	tx := core.Transaction{
		ID:          uuid.NewString(),
		Amount:      data.Amount,
		Date:        data.Date,
		Category:    data.Category,
		Type:        data.Type,
		Description: data.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if fieldErrs := validate.Transaction(tx, now); len(fieldErrs) > 0 {
		return core.Transaction{}, &ValidationError{Fields: fieldErrs}
	}

	if err := insertTransaction(ctx, r.db, tx); err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", tx.ID, "type", tx.Type, "category", tx.Category, "amount_cents", tx.Amount.Cents)
	return tx, nil
}

// UpdateTransaction merges the patch onto the stored record, preserving id
// and createdAt and refreshing updatedAt, then revalidates before writing.
// Returns ErrNotFound for an unknown id.
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, id string, patch core.TransactionPatch) (core.Transaction, error) {
	existing, err := r.getTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, err
	}

	now := time.Now().UTC()
	updated := patch.Apply(existing)
	updated.UpdatedAt = now
	if fieldErrs := validate.Transaction(updated, now); len(fieldErrs) > 0 {
		return core.Transaction{}, &ValidationError{Fields: fieldErrs}
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE transactions
		SET amount_cents = ?, date = ?, category = ?, type = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		updated.Amount.Cents, updated.Date.String(), updated.Category,
		string(updated.Type), updated.Description,
		updated.UpdatedAt.Format(time.RFC3339Nano), id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction %s: %w", id, err)
	}

	slog.InfoContext(ctx, "Transaction updated", "id", id)
	return updated, nil
}

// DeleteTransaction removes a transaction by id. A missing id is a no-op
// reported as found=false, never an error.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete transaction %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete transaction %s: %w", id, err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "Transaction deleted", "id", id)
	}
	return n > 0, nil
}

// LoadSettings returns the stored settings blob, falling back to the
// documented defaults when nothing is stored or the blob is corrupt.
func (r *SQLiteRepository) LoadSettings(ctx context.Context) core.Settings {
	defaults := core.DefaultSettings(time.Now())

	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, settingsKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return defaults
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed to load settings, using defaults", applog.FieldError, err)
		return defaults
	}

	var s core.Settings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		slog.WarnContext(ctx, "Corrupt settings blob, using defaults", applog.FieldError, err)
		return defaults
	}
	return s
}

// SaveSettings merges the partial settings onto the stored blob and writes
// it back. Best effort: failures are logged, not returned.
func (r *SQLiteRepository) SaveSettings(ctx context.Context, partial core.Settings) {
	merged := r.LoadSettings(ctx).Merge(partial)

	raw, err := json.Marshal(merged)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encode settings", applog.FieldError, err)
		return
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		settingsKey, string(raw))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to save settings", applog.FieldError, err)
	}
}

func (r *SQLiteRepository) getTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, amount_cents, date, category, type, description, created_at, updated_at
		FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %s: %w", id, err)
	}
	return tx, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTransaction(ctx context.Context, db execer, tx core.Transaction) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO transactions (id, amount_cents, date, category, type, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Amount.Cents, tx.Date.String(), tx.Category, string(tx.Type),
		tx.Description,
		tx.CreatedAt.Format(time.RFC3339Nano), tx.UpdatedAt.Format(time.RFC3339Nano))
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		tx               core.Transaction
		date, txType     string
		created, updated string
	)
	if err := row.Scan(&tx.ID, &tx.Amount.Cents, &date, &tx.Category, &txType,
		&tx.Description, &created, &updated); err != nil {
		return core.Transaction{}, err
	}

	d, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("row %s: %w", tx.ID, err)
	}
	tx.Date = d
	tx.Type = core.TransactionType(txType)

	if tx.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return core.Transaction{}, fmt.Errorf("row %s created_at: %w", tx.ID, err)
	}
	if tx.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return core.Transaction{}, fmt.Errorf("row %s updated_at: %w", tx.ID, err)
	}
	return tx, nil
}
