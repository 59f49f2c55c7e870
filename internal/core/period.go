package core

import (
	"fmt"
	"time"
)

const (
	PeriodThisMonth       PeriodType = "this-month"
	PeriodLastMonth       PeriodType = "last-month"
	PeriodLastThreeMonths PeriodType = "last-3-months"
	PeriodCustom          PeriodType = "custom"
)

// PeriodType tags a period as one of the presets or a custom range.
type PeriodType string

// Period is a date interval, inclusive on both ends, with a display label.
// Invariant: Start <= End.
type Period struct {
	Type  PeriodType `json:"type"`
	Start Date       `json:"startDate"`
	End   Date       `json:"endDate"`
	Label string     `json:"label"`
}

// Contains reports whether d falls inside the period, inclusive on both
// bounds. This predicate underlies every period-filtered aggregation.
func (p Period) Contains(d Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// Span returns the whole-day distance between the period's bounds
// (end minus start, not the inclusive day count).
func (p Period) Span() int {
	return DaysBetween(p.Start, p.End)
}

// ThisMonth builds the period covering the calendar month of now.
func ThisMonth(now time.Time) Period {
	today := DateOf(now)
	return Period{
		Type:  PeriodThisMonth,
		Start: today.StartOfMonth(),
		End:   today.EndOfMonth(),
		Label: "This Month",
	}
}

// LastMonth builds the period covering the calendar month before now's.
func LastMonth(now time.Time) Period {
	first := DateOf(now).StartOfMonth().AddMonths(-1)
	return Period{
		Type:  PeriodLastMonth,
		Start: first,
		End:   first.EndOfMonth(),
		Label: "Last Month",
	}
}

// LastThreeMonths builds the period from the first day of the month three
// months ago through today.
func LastThreeMonths(now time.Time) Period {
	today := DateOf(now)
	return Period{
		Type:  PeriodLastThreeMonths,
		Start: today.StartOfMonth().AddMonths(-3),
		End:   today,
		Label: "Last 3 Months",
	}
}

// CustomPeriod builds a custom period over [start, end] with a formatted
// label. Callers validate the range first (see validate.DateRange).
func CustomPeriod(start, end Date) Period {
	return Period{
		Type:  PeriodCustom,
		Start: start,
		End:   end,
		Label: FormatCustomLabel(start, end),
	}
}

// AllPresetPeriods returns the preset selector options in display order.
func AllPresetPeriods(now time.Time) []Period {
	return []Period{ThisMonth(now), LastMonth(now), LastThreeMonths(now)}
}

// FormatCustomLabel renders a custom range as "Nov 1-15, 2025" when both
// ends share a month and "Nov 1 - Dec 15, 2025" otherwise.
func FormatCustomLabel(start, end Date) string {
	year := end.Format("2006")
	if start.Format("Jan") == end.Format("Jan") && start.Year() == end.Year() {
		return fmt.Sprintf("%s %d-%d, %s", start.Format("Jan"), start.Day(), end.Day(), year)
	}
	return fmt.Sprintf("%s %d - %s %d, %s", start.Format("Jan"), start.Day(), end.Format("Jan"), end.Day(), year)
}
