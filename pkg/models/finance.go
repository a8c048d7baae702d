package models

import (
	"fmt"
	"time"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

var TransactionTypes = []TransactionType{TransactionTypeIncome, TransactionTypeExpense}

func ParseTransactionType(value string) (TransactionType, error) {
	for _, t := range TransactionTypes {
		if string(t) == value {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown transaction type %q", value)
}

// FinanceTransaction is one income or expense entry in an agent's ledger.
type FinanceTransaction struct {
	ID          string          `json:"id" db:"id"`
	AgencyID    string          `json:"agencyId" db:"agency_id"`
	UserID      string          `json:"userId" db:"user_id"`
	Type        TransactionType `json:"type" db:"type"`
	Amount      float64         `json:"amount" db:"amount"`
	Category    string          `json:"category" db:"category"`
	Description *string         `json:"description,omitempty" db:"description"`
	OccurredOn  time.Time       `json:"date" db:"occurred_on"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

// CreateTransactionRequest is the payload for logging a transaction.
type CreateTransactionRequest struct {
	Type        string    `json:"type" validate:"required"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Category    string    `json:"category" validate:"required"`
	Description *string   `json:"description,omitempty"`
	Date        time.Time `json:"date" validate:"required"`
}
