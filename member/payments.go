package member

import "github.com/hvillega/padron/income"

// PaymentStatus is the derived dues classification of a member. It is
// never persisted; it is recomputed from the current member and income
// snapshots every time it is needed.
type PaymentStatus string

const (
	PaymentPaid   PaymentStatus = "paid"
	PaymentExempt PaymentStatus = "exempt"
	PaymentUnpaid PaymentStatus = "unpaid"
)

// ReconcilePayments computes the payment status of each member by joining
// the two snapshots on document number. Extreme-low-income members are
// exempt regardless of any income match; low-income members with an income
// event under their document are paid; everyone else, including members
// with no economic status, is unpaid.
//
// The result is index-aligned with members. Events without a document
// number are ignored so that a member with no document can never match
// one of them.
func ReconcilePayments(members []Member, events []income.Event) []PaymentStatus {
	paidDocs := make(map[string]struct{}, len(events))
	for _, e := range events {
		if e.MemberDocument == "" {
			continue
		}
		paidDocs[e.MemberDocument] = struct{}{}
	}

	statuses := make([]PaymentStatus, len(members))
	for i, m := range members {
		switch {
		case m.EconomicStatus == EconomicExtremeLowIncome:
			statuses[i] = PaymentExempt
		case m.EconomicStatus == EconomicLowIncome && m.DocumentNumber != "":
			if _, ok := paidDocs[m.DocumentNumber]; ok {
				statuses[i] = PaymentPaid
			} else {
				statuses[i] = PaymentUnpaid
			}
		default:
			statuses[i] = PaymentUnpaid
		}
	}
	return statuses
}

// PaymentsByID returns the reconciled statuses keyed by member record id,
// the shape table views consume.
func PaymentsByID(members []Member, events []income.Event) map[string]PaymentStatus {
	statuses := ReconcilePayments(members, events)
	byID := make(map[string]PaymentStatus, len(members))
	for i, m := range members {
		byID[m.ID] = statuses[i]
	}
	return byID
}
