package report

import (
	"sort"
	"strings"

	"smartbudget/internal/core"
)

const (
	SortByDate     SortColumn = "date"
	SortByAmount   SortColumn = "amount"
	SortByCategory SortColumn = "category"

	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

type (
	// SortColumn is the list column the sort compares on.
	SortColumn string

	// SortDirection is the sort order for the active column.
	SortDirection string

	// SortState is the list's current sort selection. Each column's
	// direction toggles independently via Toggle.
	SortState struct {
		Column    SortColumn    `json:"column"`
		Direction SortDirection `json:"direction"`
	}
)

// DefaultSort is the initial list order: newest first.
func DefaultSort() SortState {
	return SortState{Column: SortByDate, Direction: Descending}
}

// Toggle returns the state after clicking a column header: re-selecting the
// active column flips its direction, selecting a new column resets to
// ascending.
func (s SortState) Toggle(column SortColumn) SortState {
	if s.Column == column {
		if s.Direction == Ascending {
			s.Direction = Descending
		} else {
			s.Direction = Ascending
		}
		return s
	}
	return SortState{Column: column, Direction: Ascending}
}

// Sort returns a sorted copy of the transactions. The sort is stable, so
// equal keys keep their original relative order. Category sorts by the
// category's display name, not its id; ids missing from the catalog compare
// as the empty name.
func Sort(txs []core.Transaction, state SortState) []core.Transaction {
	sorted := make([]core.Transaction, len(txs))
	copy(sorted, txs)

	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := compare(sorted[i], sorted[j], state.Column)
		if state.Direction == Descending {
			return cmp > 0
		}
		return cmp < 0
	})
	return sorted
}

func compare(a, b core.Transaction, column SortColumn) int {
	switch column {
	case SortByAmount:
		switch {
		case a.Amount.Cents < b.Amount.Cents:
			return -1
		case a.Amount.Cents > b.Amount.Cents:
			return 1
		}
		return 0
	case SortByCategory:
		return strings.Compare(categoryName(a.Category), categoryName(b.Category))
	default:
		switch {
		case a.Date.Before(b.Date):
			return -1
		case a.Date.After(b.Date):
			return 1
		}
		return 0
	}
}

func categoryName(id string) string {
	if cat, ok := core.CategoryByID(id); ok {
		return cat.Name
	}
	return ""
}
