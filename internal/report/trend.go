package report

import (
	"fmt"

	"smartbudget/internal/core"
)

const (
	Daily   Granularity = "day"
	Weekly  Granularity = "week"
	Monthly Granularity = "month"
)

// Granularity is the trend bucket size.
type Granularity string

// ParseGranularity validates a raw granularity string.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case Daily, Weekly, Monthly:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("granularity must be day, week or month, got %q", s)
}

// TrendPoint is one time bucket of the income-vs-expenses trend.
type TrendPoint struct {
	Label    string     `json:"label"`
	Income   core.Money `json:"income"`
	Expenses core.Money `json:"expenses"`
	Net      core.Money `json:"net"`
}

// DetermineGranularity picks the bucket size from the period's whole-day
// span: up to 31 days daily, up to 90 days weekly, monthly beyond that.
func DetermineGranularity(p core.Period) Granularity {
	span := p.Span()
	if span <= 31 {
		return Daily
	}
	if span <= 90 {
		return Weekly
	}
	return Monthly
}

// TrendData buckets transactions over [period.Start, period.End] at the
// given granularity. The bucket sequence always covers the full period:
// buckets with no transactions appear with zero values, so a non-empty
// period never yields an empty sequence. Week and month buckets are aligned
// intervals (Sunday weeks, calendar months), and a transaction belongs to
// the bucket whose aligned window contains its date even when that date lies
// outside the period itself.
func TrendData(txs []core.Transaction, period core.Period, g Granularity) []TrendPoint {
	starts := bucketStarts(period, g)
	points := make([]TrendPoint, 0, len(starts))
	for _, start := range starts {
		p := TrendPoint{Label: bucketLabel(start, g)}
		for _, tx := range txs {
			if !inBucket(tx.Date, start, g) {
				continue
			}
			switch tx.Type {
			case core.Income:
				p.Income = p.Income.Add(tx.Amount)
			case core.Expense:
				p.Expenses = p.Expenses.Add(tx.Amount)
			}
		}
		p.Net = p.Income.Sub(p.Expenses)
		points = append(points, p)
	}
	return points
}

// bucketStarts generates the ordered bucket boundary dates covering the
// period. Isolating the boundary math here keeps the fiddly calendar
// arithmetic in one place.
func bucketStarts(period core.Period, g Granularity) []core.Date {
	var starts []core.Date
	switch g {
	case Weekly:
		for d := period.Start.StartOfWeek(); !d.After(period.End); d = d.AddDays(7) {
			starts = append(starts, d)
		}
	case Monthly:
		for d := period.Start.StartOfMonth(); !d.After(period.End); d = d.AddMonths(1) {
			starts = append(starts, d)
		}
	default:
		for d := period.Start; !d.After(period.End); d = d.AddDays(1) {
			starts = append(starts, d)
		}
	}
	return starts
}

// inBucket reports whether a transaction date belongs to the bucket that
// starts at start.
func inBucket(d, start core.Date, g Granularity) bool {
	switch g {
	case Weekly:
		return !d.Before(start) && !d.After(start.AddDays(6))
	case Monthly:
		return d.Year() == start.Year() && d.Month() == start.Month()
	default:
		return d.Equal(start)
	}
}

func bucketLabel(start core.Date, g Granularity) string {
	switch g {
	case Weekly:
		return "Week of " + start.Format("Jan 2")
	case Monthly:
		return start.Format("January")
	default:
		return start.Format("Jan 2")
	}
}
