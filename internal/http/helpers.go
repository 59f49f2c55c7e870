package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"smartbudget/internal/core"
	"smartbudget/internal/report"
	"smartbudget/internal/validate"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeFieldErrors reports validation failures as a field->message map so
// the frontend can attach them to form inputs.
func writeFieldErrors(w http.ResponseWriter, fields validate.FieldErrors) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"error":  "validation failed",
		"fields": fields,
	})
}

func methodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	w.WriteHeader(http.StatusMethodNotAllowed)
}

// parsePeriod resolves the period query parameters: period names a preset,
// and period=custom requires validated start/end bounds.
func parsePeriod(r *http.Request, now time.Time) (core.Period, error) {
	q := r.URL.Query()
	switch core.PeriodType(q.Get("period")) {
	case core.PeriodLastMonth:
		return core.LastMonth(now), nil
	case core.PeriodLastThreeMonths:
		return core.LastThreeMonths(now), nil
	case core.PeriodCustom:
		start, end := q.Get("start"), q.Get("end")
		if res := validate.DateRange(start, end, now); !res.Valid {
			return core.Period{}, fmt.Errorf("invalid custom period: %s", res.Error)
		}
		startDate, _ := core.ParseDate(start)
		endDate, _ := core.ParseDate(end)
		return core.CustomPeriod(startDate, endDate), nil
	case core.PeriodThisMonth, "":
		return core.ThisMonth(now), nil
	default:
		return core.Period{}, fmt.Errorf("unknown period %q", q.Get("period"))
	}
}

// parseCriteria maps list query parameters onto filter criteria. Start and
// end are passed through raw: the filter engine fails closed on bounds that
// do not parse.
func parseCriteria(r *http.Request) core.FilterCriteria {
	q := r.URL.Query()
	criteria := core.DefaultFilters()

	if start, end := q.Get("start"), q.Get("end"); start != "" && end != "" {
		criteria.DateRange = core.DateRangeFilter{
			Preset: core.RangeCustom,
			Start:  start,
			End:    end,
		}
	}
	if cats := strings.TrimSpace(q.Get("categories")); cats != "" {
		criteria.Categories = strings.Split(cats, ",")
	}
	switch core.TypeFilter(q.Get("type")) {
	case core.FilterIncome:
		criteria.Type = core.FilterIncome
	case core.FilterExpense:
		criteria.Type = core.FilterExpense
	}
	criteria.SearchText = q.Get("q")

	return criteria
}

// parseSort maps the sort query parameters onto a sort state. sort/dir name
// the state directly; toggle applies a column-header click on top of it, so
// clients can send their current state plus the clicked column and let the
// server work out the flip-or-reset.
func parseSort(r *http.Request) report.SortState {
	q := r.URL.Query()
	state := report.DefaultSort()

	switch report.SortColumn(q.Get("sort")) {
	case report.SortByAmount:
		state.Column = report.SortByAmount
	case report.SortByCategory:
		state.Column = report.SortByCategory
	case report.SortByDate:
		state.Column = report.SortByDate
	}
	switch report.SortDirection(q.Get("dir")) {
	case report.Ascending:
		state.Direction = report.Ascending
	case report.Descending:
		state.Direction = report.Descending
	}

	switch col := report.SortColumn(q.Get("toggle")); col {
	case report.SortByDate, report.SortByAmount, report.SortByCategory:
		state = state.Toggle(col)
	}

	return state
}
