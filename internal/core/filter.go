package core

const (
	RangeAll       DateRangePreset = "all"
	RangeThisMonth DateRangePreset = "thisMonth"
	RangeLastMonth DateRangePreset = "lastMonth"
	RangeCustom    DateRangePreset = "custom"
)

const (
	FilterAll     TypeFilter = "all"
	FilterIncome  TypeFilter = "income"
	FilterExpense TypeFilter = "expense"
)

type (
	// DateRangePreset tags the date-range axis of the list filter.
	DateRangePreset string

	// TypeFilter is the type axis: everything, income only, or expenses only.
	TypeFilter string

	// DateRangeFilter holds the date-range axis. Start and End are raw ISO
	// date strings; both must be present for the axis to be active.
	DateRangeFilter struct {
		Preset DateRangePreset `json:"preset"`
		Start  string          `json:"start,omitempty"`
		End    string          `json:"end,omitempty"`
	}

	// FilterCriteria describes the active list filters. Axes combine with
	// AND: a transaction must satisfy every non-default axis to pass.
	FilterCriteria struct {
		DateRange  DateRangeFilter `json:"dateRange"`
		Categories []string        `json:"categories"`
		Type       TypeFilter      `json:"type"`
		SearchText string          `json:"searchText"`
	}
)

// DefaultFilters returns the identity criteria: no restriction on any axis.
func DefaultFilters() FilterCriteria {
	return FilterCriteria{
		DateRange: DateRangeFilter{Preset: RangeAll},
		Type:      FilterAll,
	}
}

// IsDefault reports whether no axis restricts anything.
func (f FilterCriteria) IsDefault() bool {
	return f.DateRange.Preset == RangeAll &&
		len(f.Categories) == 0 &&
		f.Type == FilterAll &&
		f.SearchText == ""
}
