package core

import (
	"errors"
	"fmt"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// TransactionType distinguishes income from expenses.
type TransactionType string

var ErrInvalidType = errors.New("type must be income or expense")

// ParseTransactionType validates and converts a raw type string.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case Income, Expense:
		return TransactionType(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
}

// Transaction is one recorded income or expense. Once persisted, records are
// replaced wholesale on update, never mutated in place: ID and CreatedAt are
// fixed at creation, UpdatedAt is refreshed on every modification.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      Money           `json:"amount"`
	Date        Date            `json:"date"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// TransactionData carries the caller-supplied fields of a new transaction.
// The persistence layer assigns id and timestamps.
type TransactionData struct {
	Amount      Money
	Date        Date
	Category    string
	Type        TransactionType
	Description string
}

// TransactionPatch is a partial update: nil fields keep the stored value.
type TransactionPatch struct {
	Amount      *Money
	Date        *Date
	Category    *string
	Type        *TransactionType
	Description *string
}

// Apply merges the patch onto an existing transaction. ID and CreatedAt are
// always preserved.
func (p TransactionPatch) Apply(tx Transaction) Transaction {
	if p.Amount != nil {
		tx.Amount = *p.Amount
	}
	if p.Date != nil {
		tx.Date = *p.Date
	}
	if p.Category != nil {
		tx.Category = *p.Category
	}
	if p.Type != nil {
		tx.Type = *p.Type
	}
	if p.Description != nil {
		tx.Description = *p.Description
	}
	return tx
}
