package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"smartbudget/internal/core"
	applog "smartbudget/internal/log"
	"smartbudget/internal/storage"
	"smartbudget/internal/validate"
)

// handleHealth performs a basic liveness check.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.started).String(),
		"requests":  s.tracer.TotalRequests(),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	if t := r.URL.Query().Get("type"); t != "" {
		parsed, err := core.ParseTransactionType(t)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, core.CategoriesByType(parsed))
		return
	}
	writeJSON(w, http.StatusOK, core.Categories())
}

func (s *Server) handlePeriods(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}
	writeJSON(w, http.StatusOK, core.AllPresetPeriods(time.Now()))
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.repo.LoadSettings(r.Context()))
	case http.MethodPut:
		var partial core.Settings
		if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
			writeError(w, http.StatusBadRequest, "invalid settings payload")
			return
		}
		s.repo.SaveSettings(r.Context(), partial)
		writeJSON(w, http.StatusOK, s.repo.LoadSettings(r.Context()))
	default:
		methodNotAllowed(w, "GET, PUT")
	}
}

// handleTransactions serves the filtered, sorted list and creates new
// transactions.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.ledger.List(parseCriteria(r), parseSort(r)))
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

// transactionRequest is the create payload. Amount arrives as a JSON number
// and is validated as its literal text, so 10.123 is rejected rather than
// silently rounded.
type transactionRequest struct {
	Amount      json.Number `json:"amount"`
	Date        string      `json:"date"`
	Category    string      `json:"category"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
}

func (req transactionRequest) validate(now time.Time) validate.FieldErrors {
	errs := make(validate.FieldErrors)
	if res := validate.Amount(req.Amount.String()); !res.Valid {
		errs["amount"] = res.Error
	}
	if res := validate.Date(req.Date, now); !res.Valid {
		errs["date"] = res.Error
	}
	txType, err := core.ParseTransactionType(req.Type)
	if err != nil {
		errs["type"] = "Type must be income or expense"
	} else if res := validate.Category(req.Category, txType); !res.Valid {
		errs["category"] = res.Error
	}
	return errs
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction payload")
		return
	}

	now := time.Now()
	if errs := req.validate(now); len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	amount, _ := core.ParseAmount(req.Amount.String())
	date, _ := core.ParseDate(req.Date)
	tx, err := s.ledger.Add(r.Context(), core.TransactionData{
		Amount:      amount,
		Date:        date,
		Category:    req.Category,
		Type:        core.TransactionType(req.Type),
		Description: validate.SanitizeDescription(req.Description),
	})
	if err != nil {
		s.writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// handleTransactionByID updates or deletes a single transaction addressed
// by /api/transactions/{id}.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.updateTransaction(w, r, id)
	case http.MethodDelete:
		found, err := s.ledger.Delete(r.Context(), id)
		if err != nil {
			s.writeStorageError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": found})
	default:
		methodNotAllowed(w, "PUT, DELETE")
	}
}

// transactionPatchRequest is the update payload; absent fields keep their
// stored values.
type transactionPatchRequest struct {
	Amount      *json.Number `json:"amount"`
	Date        *string      `json:"date"`
	Category    *string      `json:"category"`
	Type        *string      `json:"type"`
	Description *string      `json:"description"`
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request, id string) {
	var req transactionPatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction payload")
		return
	}

	now := time.Now()
	errs := make(validate.FieldErrors)
	patch := core.TransactionPatch{}

	if req.Amount != nil {
		amount, err := core.ParseAmount(req.Amount.String())
		if err != nil {
			errs["amount"] = validate.Amount(req.Amount.String()).Error
		} else {
			patch.Amount = &amount
		}
	}
	if req.Date != nil {
		if res := validate.Date(*req.Date, now); !res.Valid {
			errs["date"] = res.Error
		} else {
			date, _ := core.ParseDate(*req.Date)
			patch.Date = &date
		}
	}
	if req.Type != nil {
		txType, err := core.ParseTransactionType(*req.Type)
		if err != nil {
			errs["type"] = "Type must be income or expense"
		} else {
			patch.Type = &txType
		}
	}
	if req.Category != nil {
		// Category/type consistency is rechecked against the merged record
		// by the persistence layer.
		patch.Category = req.Category
	}
	if req.Description != nil {
		sanitized := validate.SanitizeDescription(*req.Description)
		patch.Description = &sanitized
	}

	if len(errs) > 0 {
		writeFieldErrors(w, errs)
		return
	}

	tx, err := s.ledger.Update(r.Context(), id, patch)
	if err != nil {
		s.writeStorageError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}

// writeStorageError maps persistence-layer failures onto API responses.
func (s *Server) writeStorageError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *storage.ValidationError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &vErr):
		writeFieldErrors(w, vErr.Fields)
	default:
		slog.ErrorContext(r.Context(), "Storage operation failed", applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "operation failed, state unchanged")
	}
}
