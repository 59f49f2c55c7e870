package core

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates (ISO 8601, date only).
const DateLayout = "2006-01-02"

// Date is a calendar date with no time component. Comparisons are exact
// date comparisons; there is no timezone drift because every Date is pinned
// to UTC midnight.
type Date struct {
	t time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of the given instant in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate parses an ISO YYYY-MM-DD string into a Date. Parsing is strict:
// impossible dates such as 2025-02-30 are rejected rather than normalized.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t: t.UTC()}, nil
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }

func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }

// AddDays returns the date n days after d (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// AddMonths returns the date n months after d. Like time.AddDate it
// normalizes overflowing days, so callers working with firsts-of-month are
// always safe.
func (d Date) AddMonths(n int) Date {
	return Date{t: d.t.AddDate(0, n, 0)}
}

// DaysBetween returns the number of whole days from a to b. Negative when b
// is before a.
func DaysBetween(a, b Date) int {
	return int(b.t.Sub(a.t).Hours() / 24)
}

// StartOfMonth returns the first day of d's calendar month.
func (d Date) StartOfMonth() Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// EndOfMonth returns the last day of d's calendar month.
func (d Date) EndOfMonth() Date {
	return NewDate(d.Year(), d.Month()+1, 0)
}

// StartOfWeek returns the Sunday on or before d. Weeks are Sunday-aligned
// everywhere in the trend engine.
func (d Date) StartOfWeek() Date {
	return d.AddDays(-int(d.Weekday()))
}

// Format formats the date with the given time layout.
func (d Date) Format(layout string) string { return d.t.Format(layout) }

// String returns the ISO YYYY-MM-DD form.
func (d Date) String() string { return d.t.Format(DateLayout) }

// MarshalJSON encodes the date as an ISO YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes an ISO YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("date must be a JSON string, got %s", data)
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
