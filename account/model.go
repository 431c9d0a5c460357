// Package account defines cash account records.
package account

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Collection is the remote collection name for accounts.
const Collection = "accounts"

// Account represents a cash account income and expenses are attributed to.
type Account struct {
	ID             string          `json:"id,omitempty"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
	CreatedAt      time.Time       `json:"created_at,omitzero"`
}

// ErrInvalidInput indicates a missing account name.
var ErrInvalidInput = errors.New("invalid account input")

// Validate checks fields required to create an account.
func Validate(a Account) error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrInvalidInput
	}
	return nil
}
