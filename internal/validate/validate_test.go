package validate

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"smartbudget/internal/core"
)

var validateNow = time.Date(2025, 11, 15, 12, 0, 0, 0, time.UTC)

func TestAmount(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
		msg   string
	}{
		{"10.50", true, ""},
		{"0.01", true, ""},
		{"1500", true, ""},
		{"0", false, "Amount must be greater than zero"},
		{"-5", false, "Amount must be greater than zero"},
		{"10.555", false, "Amount cannot have more than 2 decimal places"},
		{"abc", false, "Amount must be a finite number"},
		{"", false, "Amount must be a finite number"},
	}
	for _, tc := range cases {
		r := Amount(tc.in)
		if r.Valid != tc.valid {
			t.Fatalf("Amount(%q).Valid = %v, want %v", tc.in, r.Valid, tc.valid)
		}
		if r.Error != tc.msg {
			t.Fatalf("Amount(%q).Error = %q, want %q", tc.in, r.Error, tc.msg)
		}
	}
}

func TestDate(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
		msg   string
	}{
		{"2025-11-15", true, ""},
		{"2020-01-01", true, ""},
		{"2026-11-15", true, ""}, // exactly one year out is still allowed
		{"2026-11-16", false, "Date cannot be more than 1 year in the future"},
		{"", false, "Date must be a non-empty string"},
		{"  ", false, "Date must be a non-empty string"},
		{"15-11-2025", false, "Date must be in ISO 8601 format (YYYY-MM-DD)"},
		{"2025-1-05", false, "Date must be in ISO 8601 format (YYYY-MM-DD)"},
		{"2025-02-30", false, "Date must be a valid date string"},
	}
	for _, tc := range cases {
		r := Date(tc.in, validateNow)
		if r.Valid != tc.valid {
			t.Fatalf("Date(%q).Valid = %v, want %v (%s)", tc.in, r.Valid, tc.valid, r.Error)
		}
		if r.Error != tc.msg {
			t.Fatalf("Date(%q).Error = %q, want %q", tc.in, r.Error, tc.msg)
		}
	}
}

func TestCategory(t *testing.T) {
	if r := Category("food", core.Expense); !r.Valid {
		t.Fatalf("food/expense rejected: %s", r.Error)
	}
	if r := Category("salary", core.Income); !r.Valid {
		t.Fatalf("salary/income rejected: %s", r.Error)
	}
	// Right id, wrong type.
	if r := Category("salary", core.Expense); r.Valid {
		t.Fatalf("salary/expense accepted")
	}
	if r := Category("nonexistent", core.Expense); r.Valid {
		t.Fatalf("unknown id accepted")
	}
	if r := Category("", core.Expense); r.Valid || r.Error != "Category ID must be a non-empty string" {
		t.Fatalf("empty id result = %+v", r)
	}
}

func TestDateRange(t *testing.T) {
	cases := []struct {
		start, end string
		valid      bool
		msg        string
	}{
		{"2025-11-01", "2025-11-15", true, ""},
		{"2025-11-15", "2025-11-15", true, ""}, // single-day range
		{"bogus", "2025-11-15", false, "Invalid start date format"},
		{"2025-11-01", "bogus", false, "Invalid end date format"},
		{"2025-11-15", "2025-11-01", false, "End date must be after or equal to start date"},
		{"2025-11-01", "2025-11-16", false, "End date cannot be in the future"},
	}
	for _, tc := range cases {
		r := DateRange(tc.start, tc.end, validateNow)
		if r.Valid != tc.valid || r.Error != tc.msg {
			t.Fatalf("DateRange(%q, %q) = %+v, want valid=%v msg=%q", tc.start, tc.end, r, tc.valid, tc.msg)
		}
	}
}

func TestSanitizeDescription(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"  padded  ", "padded"},
		{"<script>alert('x')</script>", "&lt;script&gt;alert(&#x27;x&#x27;)&lt;/script&gt;"},
		{`she said "hi"`, "she said &quot;hi&quot;"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeDescription(tc.in); got != tc.want {
			t.Fatalf("SanitizeDescription(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeDescriptionTruncatesEncoded(t *testing.T) {
	long := strings.Repeat("a", 300)
	if got := SanitizeDescription(long); len(got) != MaxDescriptionLen {
		t.Fatalf("len = %d, want %d", len(got), MaxDescriptionLen)
	}

	// Encoding happens before the length check, so a short input full of
	// quotes can still hit the cap, possibly mid-entity.
	quoted := strings.Repeat(`"`, 100) // encodes to 600 bytes
	got := SanitizeDescription(quoted)
	if len(got) != MaxDescriptionLen {
		t.Fatalf("encoded len = %d, want %d", len(got), MaxDescriptionLen)
	}
	if strings.ContainsAny(got, `<>"'`) {
		t.Fatalf("raw markup survived: %q", got)
	}
}

func TestSanitizeDescriptionTruncatesOnRuneBoundary(t *testing.T) {
	// A multi-byte rune straddling the cap is dropped whole, never split
	// into a dangling lead byte.
	got := SanitizeDescription(strings.Repeat("a", 199) + "é")
	if !utf8.ValidString(got) {
		t.Fatalf("result is not valid UTF-8: %q", got)
	}
	if got != strings.Repeat("a", 199) {
		t.Fatalf("len = %d, want the 199 ASCII bytes only", len(got))
	}

	// A rune ending exactly at the cap is kept.
	got = SanitizeDescription(strings.Repeat("a", 198) + "éx")
	if !utf8.ValidString(got) || !strings.HasSuffix(got, "é") {
		t.Fatalf("boundary rune lost: %q", got)
	}
	if len(got) != MaxDescriptionLen {
		t.Fatalf("len = %d, want %d", len(got), MaxDescriptionLen)
	}

	// All multi-byte input still lands at or under the cap, valid.
	got = SanitizeDescription(strings.Repeat("日", 100)) // 300 bytes
	if !utf8.ValidString(got) || len(got) > MaxDescriptionLen {
		t.Fatalf("multi-byte truncation gave %d bytes, valid=%v", len(got), utf8.ValidString(got))
	}
}

func TestTransaction(t *testing.T) {
	valid := core.Transaction{
		ID:       "t1",
		Amount:   core.Money{Cents: 1050},
		Date:     core.NewDate(2025, 11, 5),
		Category: "food",
		Type:     core.Expense,
	}
	if errs := Transaction(valid, validateNow); len(errs) != 0 {
		t.Fatalf("valid transaction rejected: %v", errs)
	}

	bad := valid
	bad.Amount = core.Money{}
	bad.Category = "salary" // income category on an expense
	bad.Description = strings.Repeat("x", 201)
	errs := Transaction(bad, validateNow)

	if errs["amount"] != "Amount must be greater than zero" {
		t.Fatalf("amount error = %q", errs["amount"])
	}
	if errs["category"] != "Category ID does not exist in predefined list" {
		t.Fatalf("category error = %q", errs["category"])
	}
	if errs["description"] != "Description cannot exceed 200 characters" {
		t.Fatalf("description error = %q", errs["description"])
	}

	// Invalid type suppresses category validation in favor of the type error.
	bad.Type = "transfer"
	errs = Transaction(bad, validateNow)
	if errs["type"] != "Type must be income or expense" {
		t.Fatalf("type error = %q", errs["type"])
	}
	if _, ok := errs["category"]; ok {
		t.Fatalf("category error reported alongside type error")
	}
}

func TestFieldErrorsMessage(t *testing.T) {
	if got := (FieldErrors{}).Message(); got != "" {
		t.Fatalf("empty message = %q", got)
	}
	fe := FieldErrors{
		"date":   "Date must be a valid date string",
		"amount": "Amount must be greater than zero",
	}
	want := "amount: Amount must be greater than zero; date: Date must be a valid date string"
	if got := fe.Message(); got != want {
		t.Fatalf("Message() = %q, want %q", got, want)
	}
}
