package http

import (
	"net/http"
	"strconv"
	"time"

	"smartbudget/internal/report"
)

const defaultRecentCount = 5

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	period, err := parsePeriod(r, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"period":  period,
		"summary": s.ledger.Summary(period),
	})
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	period, err := parsePeriod(r, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	slices := s.ledger.Breakdown(period)
	if slices == nil {
		slices = []report.PieSlice{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"period": period,
		"slices": slices,
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	period, err := parsePeriod(r, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var granularity report.Granularity
	if g := r.URL.Query().Get("granularity"); g != "" {
		granularity, err = report.ParseGranularity(g)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	trend := s.ledger.TrendSeries(period, granularity)
	writeJSON(w, http.StatusOK, map[string]any{
		"period":      period,
		"granularity": trend.Granularity,
		"points":      trend.Points,
	})
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	n := defaultRecentCount
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		n = parsed
	}
	writeJSON(w, http.StatusOK, s.ledger.Recent(n))
}
