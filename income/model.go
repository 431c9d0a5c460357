// Package income defines income receipt records.
package income

import (
	"time"

	"github.com/shopspring/decimal"
)

// Collection is the remote collection name for income events.
const Collection = "income_events"

// Kind tags the origin of an income event.
type Kind string

const (
	KindDues     Kind = "dues"
	KindDonation Kind = "donation"
	KindEvent    Kind = "event"
	KindOther    Kind = "other"
)

// Event represents one income receipt. MemberDocument references the
// paying member by national identifier, not by record id; it may be empty
// for income not attributable to a member.
type Event struct {
	ID             string          `json:"id,omitempty"`
	MemberDocument string          `json:"member_document,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	Kind           Kind            `json:"kind"`
	Description    string          `json:"description,omitempty"`
	Date           string          `json:"date,omitempty"`
	AccountID      string          `json:"account_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at,omitzero"`
}
