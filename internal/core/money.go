// Package core provides the SmartBudget domain model: calendar dates,
// money, transactions, the fixed category catalog, reporting periods and
// list filter criteria. Everything here is a plain value type with no I/O.
package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount     = errors.New("amount must be a finite number")
	ErrAmountNotPositive = errors.New("amount must be greater than zero")
	ErrAmountPrecision   = errors.New("amount cannot have more than 2 decimal places")
)

// Money is an exact amount in cents. Keeping amounts integral makes every
// aggregation exact at the cent level; floats only appear at the parsing and
// rendering edges.
type Money struct {
	Cents int64
}

// ParseAmount parses a decimal amount string into Money. The amount must be
// positive and carry at most two fractional digits.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.IsPositive() {
		return Money{}, ErrAmountNotPositive
	}
	if !d.Equal(d.Round(2)) {
		return Money{}, ErrAmountPrecision
	}
	return Money{Cents: d.Shift(2).IntPart()}, nil
}

// MoneyFromFloat converts a float amount to Money, rounding half away from
// zero at the cent boundary.
func MoneyFromFloat(f float64) Money {
	return Money{Cents: decimal.NewFromFloat(f).Round(2).Shift(2).IntPart()}
}

func (m Money) Add(o Money) Money { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Sub(o Money) Money { return Money{Cents: m.Cents - o.Cents} }

func (m Money) IsZero() bool     { return m.Cents == 0 }
func (m Money) IsPositive() bool { return m.Cents > 0 }

// Decimal returns the amount as an exact decimal value.
func (m Money) Decimal() decimal.Decimal { return decimal.New(m.Cents, -2) }

// Float64 returns the amount as a float for display purposes. Use cents for
// calculations.
func (m Money) Float64() float64 {
	f, _ := m.Decimal().Float64()
	return f
}

// String renders the amount with exactly two fractional digits.
func (m Money) String() string { return m.Decimal().StringFixed(2) }

// MarshalJSON encodes the amount as a JSON number with two fractional
// digits, e.g. 1500.00.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal().StringFixed(2)), nil
}

// UnmarshalJSON decodes a JSON number, rounding half away from zero at the
// cent boundary. Strict two-decimal validation happens in ParseAmount at the
// input edge, not here.
func (m *Money) UnmarshalJSON(data []byte) error {
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("parse amount %s: %w", data, err)
	}
	m.Cents = d.Round(2).Shift(2).IntPart()
	return nil
}
