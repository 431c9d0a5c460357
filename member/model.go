// Package member defines the titular-member record and the payment-status
// reconciliation over member and income snapshots.
package member

import "time"

// Collection is the remote collection name for members.
const Collection = "members"

// EconomicStatus classifies a member for dues purposes.
type EconomicStatus string

const (
	EconomicUnset            EconomicStatus = ""
	EconomicLowIncome        EconomicStatus = "low_income"
	EconomicExtremeLowIncome EconomicStatus = "extreme_low_income"
)

// Member represents a titular member. DocumentNumber is the national
// identifier, the natural key joining members to income events; it may be
// absent when the member is not yet verified.
type Member struct {
	ID             string         `json:"id,omitempty"`
	DocumentNumber string         `json:"document_number,omitempty"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	Address        string         `json:"address,omitempty"`
	District       string         `json:"district,omitempty"`
	Province       string         `json:"province,omitempty"`
	Department     string         `json:"department,omitempty"`
	BirthDate      string         `json:"birth_date,omitempty"`
	Phone          string         `json:"phone,omitempty"`
	EconomicStatus EconomicStatus `json:"economic_status,omitempty"`
	CreatedAt      time.Time      `json:"created_at,omitzero"`
}
