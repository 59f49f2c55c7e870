// Package http exposes the JSON API consumed by the browser frontend:
// transaction CRUD with list filtering and sorting, dashboard reports, the
// category catalog, period presets, and the persisted settings blob.
package http

import (
	"net/http"
	"time"

	"smartbudget/internal/middleware/trace"
	"smartbudget/internal/services"
	"smartbudget/internal/storage"
)

// Server bundles the handlers' dependencies.
type Server struct {
	ledger  *services.Ledger
	repo    *storage.SQLiteRepository
	tracer  *trace.Middleware
	started time.Time
}

// NewServer builds the configured *http.Server for the given address.
func NewServer(addr string, ledger *services.Ledger, repo *storage.SQLiteRepository) *http.Server {
	s := &Server{
		ledger:  ledger,
		repo:    repo,
		tracer:  trace.NewMiddleware(),
		started: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc("/api/periods", s.handlePeriods)
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/transactions/", s.handleTransactionByID)
	mux.HandleFunc("/api/dashboard/summary", s.handleSummary)
	mux.HandleFunc("/api/dashboard/breakdown", s.handleBreakdown)
	mux.HandleFunc("/api/dashboard/trend", s.handleTrend)
	mux.HandleFunc("/api/dashboard/recent", s.handleRecent)

	return &http.Server{
		Addr:           addr,
		Handler:        s.tracer.Middleware(mux),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
}
