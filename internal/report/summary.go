// Package report implements the pure reporting engines: period-aware
// aggregation, adaptive trend bucketing, pie-chart transformation, and the
// transaction list filter/sort. Every function is total over well-formed
// inputs, performs no I/O, and reads no ambient state; callers pass the
// transaction list explicitly.
package report

import "smartbudget/internal/core"

// inPeriod reports whether a transaction counts for the given optional
// period filter.
func inPeriod(tx core.Transaction, period *core.Period) bool {
	return period == nil || period.Contains(tx.Date)
}

// TotalIncome sums all income transactions, optionally restricted to a
// period. Empty input yields zero.
func TotalIncome(txs []core.Transaction, period *core.Period) core.Money {
	return totalByType(txs, core.Income, period)
}

// TotalExpenses sums all expense transactions, optionally restricted to a
// period.
func TotalExpenses(txs []core.Transaction, period *core.Period) core.Money {
	return totalByType(txs, core.Expense, period)
}

func totalByType(txs []core.Transaction, t core.TransactionType, period *core.Period) core.Money {
	var total core.Money
	for _, tx := range txs {
		if tx.Type == t && inPeriod(tx, period) {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// NetBalance returns total income minus total expenses. Amounts are integer
// cents, so the subtraction is exact.
func NetBalance(txs []core.Transaction, period *core.Period) core.Money {
	return TotalIncome(txs, period).Sub(TotalExpenses(txs, period))
}

// ExpensesByCategory sums expense transactions per category id, optionally
// restricted to a period. Categories with no matching transactions are
// absent from the result, never present with zero.
func ExpensesByCategory(txs []core.Transaction, period *core.Period) map[string]core.Money {
	sums := make(map[string]core.Money)
	for _, tx := range txs {
		if tx.Type != core.Expense || !inPeriod(tx, period) {
			continue
		}
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
	}
	return sums
}
