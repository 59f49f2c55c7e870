package report

import (
	"strings"

	"smartbudget/internal/core"
)

// Filter returns the transactions passing every active axis of the criteria.
// Axes combine with AND; the default criteria is the identity filter. The
// date-range axis fails closed: if either bound fails to parse the
// transaction is excluded rather than let through.
func Filter(txs []core.Transaction, criteria core.FilterCriteria) []core.Transaction {
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if matches(tx, criteria) {
			out = append(out, tx)
		}
	}
	return out
}

func matches(tx core.Transaction, criteria core.FilterCriteria) bool {
	if criteria.DateRange.Start != "" && criteria.DateRange.End != "" {
		start, err := core.ParseDate(criteria.DateRange.Start)
		if err != nil {
			return false
		}
		end, err := core.ParseDate(criteria.DateRange.End)
		if err != nil {
			return false
		}
		if tx.Date.Before(start) || tx.Date.After(end) {
			return false
		}
	}

	if len(criteria.Categories) > 0 && !containsString(criteria.Categories, tx.Category) {
		return false
	}

	if criteria.Type != core.FilterAll && string(criteria.Type) != string(tx.Type) {
		return false
	}

	if criteria.SearchText != "" {
		needle := strings.ToLower(criteria.SearchText)
		if !strings.Contains(strings.ToLower(tx.Description), needle) {
			return false
		}
	}

	return true
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
