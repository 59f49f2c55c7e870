package report

import (
	"sort"

	"smartbudget/internal/core"
)

// unknownColor is the neutral gray used for out-of-catalog category ids.
const unknownColor = "#9CA3AF"

// PieSlice is one presentation-ready slice of the category breakdown chart.
type PieSlice struct {
	Label      string     `json:"label"`
	Value      core.Money `json:"value"`
	Color      string     `json:"color"`
	Percentage int        `json:"percentage"`
}

// PieSlices turns per-category amounts into chart slices ordered by value
// descending. Only positive amounts produce slices; a zero or negative total
// yields an empty result. Integer percentages are normalized so they sum to
// exactly 100: independent rounding can land on 99 or 101, and the signed
// difference is absorbed by the slice with the largest value. Slices are
// assembled in ascending category-id order, so when several slices tie for
// the largest value the one with the lowest category id takes the
// correction.
func PieSlices(byCategory map[string]core.Money) []PieSlice {
	ids := make([]string, 0, len(byCategory))
	for id := range byCategory {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var total core.Money
	for _, id := range ids {
		total = total.Add(byCategory[id])
	}
	if !total.IsPositive() {
		return nil
	}

	slices := make([]PieSlice, 0, len(ids))
	for _, id := range ids {
		amount := byCategory[id]
		if !amount.IsPositive() {
			continue
		}
		label, color := "Unknown", unknownColor
		if cat, ok := core.CategoryByID(id); ok {
			label, color = cat.Name, cat.Color
		}
		slices = append(slices, PieSlice{
			Label:      label,
			Value:      amount,
			Color:      color,
			Percentage: roundedPercent(amount, total),
		})
	}
	if len(slices) == 0 {
		return nil
	}

	sum := 0
	for _, s := range slices {
		sum += s.Percentage
	}
	if sum != 100 {
		largest := 0
		for i, s := range slices {
			if s.Value.Cents > slices[largest].Value.Cents {
				largest = i
			}
		}
		slices[largest].Percentage += 100 - sum
	}

	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Value.Cents > slices[j].Value.Cents
	})
	return slices
}

// roundedPercent computes round(amount/total*100) with half rounding away
// from zero, matching the cent-boundary rounding rule used everywhere else.
func roundedPercent(amount, total core.Money) int {
	return int(amount.Decimal().Div(total.Decimal()).Shift(2).Round(0).IntPart())
}
