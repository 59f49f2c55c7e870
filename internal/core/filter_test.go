package core

import "testing"

func TestFilterCriteriaIsDefault(t *testing.T) {
	if !DefaultFilters().IsDefault() {
		t.Fatalf("DefaultFilters not default")
	}

	cases := []struct {
		name string
		f    FilterCriteria
	}{
		{"date range", FilterCriteria{DateRange: DateRangeFilter{Preset: RangeThisMonth}, Type: FilterAll}},
		{"categories", FilterCriteria{DateRange: DateRangeFilter{Preset: RangeAll}, Categories: []string{"food"}, Type: FilterAll}},
		{"type", FilterCriteria{DateRange: DateRangeFilter{Preset: RangeAll}, Type: FilterExpense}},
		{"search", FilterCriteria{DateRange: DateRangeFilter{Preset: RangeAll}, Type: FilterAll, SearchText: "rent"}},
	}
	for _, tc := range cases {
		if tc.f.IsDefault() {
			t.Fatalf("%s: criteria reported default", tc.name)
		}
	}
}
