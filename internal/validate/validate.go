// Package validate implements the field-level validation rules consumed by
// the persistence layer and by HTTP request handling. Every validator
// returns a structured result rather than an error chain, so callers can map
// failures onto form fields.
package validate

import (
	"errors"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"smartbudget/internal/core"
)

// MaxDescriptionLen is the stored description budget, applied after
// HTML-entity encoding.
const MaxDescriptionLen = 200

// Result is the outcome of a single field validation.
type Result struct {
	Valid bool
	Error string
}

func ok() Result             { return Result{Valid: true} }
func fail(msg string) Result { return Result{Valid: false, Error: msg} }

// FieldErrors maps field names to validation messages. Empty means valid.
type FieldErrors map[string]string

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Amount checks a raw amount string: it must parse as a finite decimal
// number, be greater than zero, and carry at most two decimal places.
func Amount(s string) Result {
	_, err := core.ParseAmount(s)
	switch {
	case err == nil:
		return ok()
	case errors.Is(err, core.ErrAmountNotPositive):
		return fail("Amount must be greater than zero")
	case errors.Is(err, core.ErrAmountPrecision):
		return fail("Amount cannot have more than 2 decimal places")
	default:
		return fail("Amount must be a finite number")
	}
}

// Date checks an ISO YYYY-MM-DD string: correct format, a real calendar
// date, and not more than one year after now.
func Date(s string, now time.Time) Result {
	if strings.TrimSpace(s) == "" {
		return fail("Date must be a non-empty string")
	}
	if !isoDatePattern.MatchString(s) {
		return fail("Date must be in ISO 8601 format (YYYY-MM-DD)")
	}
	d, err := core.ParseDate(s)
	if err != nil {
		return fail("Date must be a valid date string")
	}
	if d.After(core.DateOf(now.AddDate(1, 0, 0))) {
		return fail("Date cannot be more than 1 year in the future")
	}
	return ok()
}

// Category checks that the id exists in the fixed catalog under the given
// transaction type.
func Category(id string, t core.TransactionType) Result {
	if strings.TrimSpace(id) == "" {
		return fail("Category ID must be a non-empty string")
	}
	cat, found := core.CategoryByID(id)
	if !found || cat.Type != t {
		return fail("Category ID does not exist in predefined list")
	}
	return ok()
}

// DateRange checks a candidate custom range: both bounds must parse, the end
// must not precede the start, and the end must not be in the future.
func DateRange(start, end string, now time.Time) Result {
	startDate, err := core.ParseDate(start)
	if err != nil {
		return fail("Invalid start date format")
	}
	endDate, err := core.ParseDate(end)
	if err != nil {
		return fail("Invalid end date format")
	}
	if endDate.Before(startDate) {
		return fail("End date must be after or equal to start date")
	}
	if endDate.After(core.DateOf(now)) {
		return fail("End date cannot be in the future")
	}
	return ok()
}

var descriptionEncoder = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// SanitizeDescription neutralizes markup in a free-text description:
// HTML-entity encodes < > " ', trims whitespace, and truncates to
// MaxDescriptionLen. Truncation applies to the encoded string, so a cut can
// land inside an encoded entity; the stored value is still inert markup. The
// cut always falls on a rune boundary so the result stays valid UTF-8.
func SanitizeDescription(s string) string {
	encoded := strings.TrimSpace(descriptionEncoder.Replace(s))
	if len(encoded) <= MaxDescriptionLen {
		return encoded
	}
	cut := MaxDescriptionLen
	for cut > 0 && !utf8.RuneStart(encoded[cut]) {
		cut--
	}
	return encoded[:cut]
}

// Transaction validates an assembled transaction record field by field.
// Used both before persisting and when deciding whether a loaded row is
// sound enough to keep.
func Transaction(tx core.Transaction, now time.Time) FieldErrors {
	errs := make(FieldErrors)

	if !tx.Amount.IsPositive() {
		errs["amount"] = "Amount must be greater than zero"
	}
	if tx.Date.IsZero() {
		errs["date"] = "Date must be a valid date string"
	} else if r := Date(tx.Date.String(), now); !r.Valid {
		errs["date"] = r.Error
	}
	if _, err := core.ParseTransactionType(string(tx.Type)); err != nil {
		errs["type"] = "Type must be income or expense"
	} else if r := Category(tx.Category, tx.Type); !r.Valid {
		errs["category"] = r.Error
	}
	if len(tx.Description) > MaxDescriptionLen {
		errs["description"] = "Description cannot exceed 200 characters"
	}

	return errs
}

// Message flattens field errors into a single human-readable string, stable
// across runs for logging and API payloads.
func (fe FieldErrors) Message() string {
	if len(fe) == 0 {
		return ""
	}
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+fe[f])
	}
	return strings.Join(parts, "; ")
}
