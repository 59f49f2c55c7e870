// Package services hosts the Ledger, the explicit state container between
// the HTTP layer and the pure report engines. It owns the in-memory
// transaction list, keeps it in step with storage, and memoizes derived
// report data keyed on a revision counter so stale entries can never be
// served after a mutation.
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"smartbudget/internal/cache"
	"smartbudget/internal/core"
	"smartbudget/internal/log"
	"smartbudget/internal/report"
	"smartbudget/internal/storage"
)

// Summary is the headline dashboard numbers for a period.
type Summary struct {
	TotalIncome   core.Money `json:"totalIncome"`
	TotalExpenses core.Money `json:"totalExpenses"`
	NetBalance    core.Money `json:"netBalance"`
}

// Trend pairs the selected granularity with its bucket series.
type Trend struct {
	Granularity report.Granularity  `json:"granularity"`
	Points      []report.TrendPoint `json:"points"`
}

// Ledger is the single state container for one session's transaction list.
type Ledger struct {
	repo *storage.SQLiteRepository

	mu  sync.RWMutex
	txs []core.Transaction
	rev uint64

	summaries  *cache.LRU[Summary]
	breakdowns *cache.LRU[[]report.PieSlice]
	trends     *cache.LRU[Trend]
}

// NewLedger loads the stored transactions and wires the memoization caches.
func NewLedger(ctx context.Context, repo *storage.SQLiteRepository, cacheSize int, cacheTTL time.Duration) *Ledger {
	l := &Ledger{
		repo:       repo,
		summaries:  cache.NewLRU[Summary](cacheSize, cacheTTL),
		breakdowns: cache.NewLRU[[]report.PieSlice](cacheSize, cacheTTL),
		trends:     cache.NewLRU[Trend](cacheSize, cacheTTL),
	}
	l.txs = repo.LoadTransactions(ctx)
	log.ForComponent(log.ComponentLedger).InfoContext(ctx, "Ledger loaded", "transactions", len(l.txs))
	return l
}

// Caches exposes the memoization caches for expiry sweeping.
func (l *Ledger) Caches() []cache.Cleaner {
	return []cache.Cleaner{l.summaries, l.breakdowns, l.trends}
}

// Transactions returns a copy of the current list in storage order.
func (l *Ledger) Transactions() []core.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]core.Transaction, len(l.txs))
	copy(out, l.txs)
	return out
}

// List applies the filter criteria and sort state for list display.
func (l *Ledger) List(criteria core.FilterCriteria, sortState report.SortState) []core.Transaction {
	return report.Sort(report.Filter(l.Transactions(), criteria), sortState)
}

// Recent returns the n most recent transactions by date, newest first, with
// creation time breaking date ties.
func (l *Ledger) Recent(n int) []core.Transaction {
	txs := l.Transactions()
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[j].Date.Before(txs[i].Date)
		}
		return txs[j].CreatedAt.Before(txs[i].CreatedAt)
	})
	if n < len(txs) {
		txs = txs[:n]
	}
	return txs
}

// Add validates and persists a new transaction, then folds it into the
// in-memory list.
func (l *Ledger) Add(ctx context.Context, data core.TransactionData) (core.Transaction, error) {
	tx, err := l.repo.AddTransaction(ctx, data)
	if err != nil {
		return core.Transaction{}, err
	}
	l.mu.Lock()
	l.txs = append(l.txs, tx)
	l.rev++
	l.mu.Unlock()
	return tx, nil
}

// Update merges a patch onto a stored transaction.
func (l *Ledger) Update(ctx context.Context, id string, patch core.TransactionPatch) (core.Transaction, error) {
	tx, err := l.repo.UpdateTransaction(ctx, id, patch)
	if err != nil {
		return core.Transaction{}, err
	}
	l.mu.Lock()
	for i := range l.txs {
		if l.txs[i].ID == id {
			l.txs[i] = tx
			break
		}
	}
	l.rev++
	l.mu.Unlock()
	return tx, nil
}

// Delete removes a transaction by id, reporting whether it existed.
func (l *Ledger) Delete(ctx context.Context, id string) (bool, error) {
	found, err := l.repo.DeleteTransaction(ctx, id)
	if err != nil || !found {
		return found, err
	}
	l.mu.Lock()
	for i := range l.txs {
		if l.txs[i].ID == id {
			l.txs = append(l.txs[:i], l.txs[i+1:]...)
			break
		}
	}
	l.rev++
	l.mu.Unlock()
	return true, nil
}

// Refresh reloads the list from storage, discarding the in-memory copy.
func (l *Ledger) Refresh(ctx context.Context) {
	txs := l.repo.LoadTransactions(ctx)
	l.mu.Lock()
	l.txs = txs
	l.rev++
	l.mu.Unlock()
}

// Summary returns the period totals, memoized per (revision, period).
func (l *Ledger) Summary(period core.Period) Summary {
	key := l.cacheKey("summary", period, "")
	if s, ok := l.summaries.Get(key); ok {
		return s
	}
	txs := l.Transactions()
	s := Summary{
		TotalIncome:   report.TotalIncome(txs, &period),
		TotalExpenses: report.TotalExpenses(txs, &period),
		NetBalance:    report.NetBalance(txs, &period),
	}
	l.summaries.Set(key, s)
	return s
}

// Breakdown returns the expense pie slices for a period.
func (l *Ledger) Breakdown(period core.Period) []report.PieSlice {
	key := l.cacheKey("breakdown", period, "")
	if b, ok := l.breakdowns.Get(key); ok {
		return b
	}
	slices := report.PieSlices(report.ExpensesByCategory(l.Transactions(), &period))
	l.breakdowns.Set(key, slices)
	return slices
}

// TrendSeries returns the bucketed trend for a period. An empty granularity
// selects the adaptive one for the period's span.
func (l *Ledger) TrendSeries(period core.Period, g report.Granularity) Trend {
	if g == "" {
		g = report.DetermineGranularity(period)
	}
	key := l.cacheKey("trend", period, string(g))
	if t, ok := l.trends.Get(key); ok {
		return t
	}
	t := Trend{Granularity: g, Points: report.TrendData(l.Transactions(), period, g)}
	l.trends.Set(key, t)
	return t
}

// cacheKey keys derived data on the list revision plus the report inputs,
// so any mutation implicitly invalidates all memoized results.
func (l *Ledger) cacheKey(kind string, period core.Period, extra string) string {
	l.mu.RLock()
	rev := l.rev
	l.mu.RUnlock()
	return strings.Join([]string{
		kind,
		fmt.Sprint(rev),
		period.Start.String(),
		period.End.String(),
		extra,
	}, "|")
}
