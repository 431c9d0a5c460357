// Package expense defines expense records.
package expense

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Collection is the remote collection name for expenses.
const Collection = "expenses"

// Expense represents one outgoing payment.
type Expense struct {
	ID          string          `json:"id,omitempty"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date,omitempty"`
	AccountID   string          `json:"account_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitzero"`
}

// ErrInvalidInput indicates a missing description or non-positive amount.
var ErrInvalidInput = errors.New("invalid expense input")

// Validate checks fields required to record an expense.
func Validate(e Expense) error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrInvalidInput
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidInput
	}
	return nil
}
