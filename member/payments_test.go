package member_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hvillega/padron/income"
	"github.com/hvillega/padron/member"
)

func dues(document string, amount int64) income.Event {
	return income.Event{
		MemberDocument: document,
		Amount:         decimal.NewFromInt(amount),
		Kind:           income.KindDues,
	}
}

func TestReconcilePayments_PaidClassification(t *testing.T) {
	members := []member.Member{
		{ID: "m1", DocumentNumber: "12345678", EconomicStatus: member.EconomicLowIncome},
	}
	events := []income.Event{dues("12345678", 50)}

	statuses := member.ReconcilePayments(members, events)
	require.Equal(t, []member.PaymentStatus{member.PaymentPaid}, statuses)
}

func TestReconcilePayments_UnpaidDefault(t *testing.T) {
	members := []member.Member{
		{ID: "m1", DocumentNumber: "99999999", EconomicStatus: member.EconomicLowIncome},
	}

	statuses := member.ReconcilePayments(members, nil)
	require.Equal(t, []member.PaymentStatus{member.PaymentUnpaid}, statuses)
}

func TestReconcilePayments_ExemptPrecedence(t *testing.T) {
	// Extreme-low-income members are exempt even with a matching payment.
	members := []member.Member{
		{ID: "m1", DocumentNumber: "08112233", EconomicStatus: member.EconomicExtremeLowIncome},
	}
	events := []income.Event{dues("08112233", 50)}

	statuses := member.ReconcilePayments(members, events)
	require.Equal(t, []member.PaymentStatus{member.PaymentExempt}, statuses)
}

func TestReconcilePayments_EmptyDocumentNeverMatches(t *testing.T) {
	// A member without a document cannot be paid by an event whose
	// document is also empty.
	members := []member.Member{
		{ID: "m1", EconomicStatus: member.EconomicLowIncome},
	}
	events := []income.Event{dues("", 50)}

	statuses := member.ReconcilePayments(members, events)
	require.Equal(t, []member.PaymentStatus{member.PaymentUnpaid}, statuses)
}

func TestReconcilePayments_UnsetStatusIsUnpaid(t *testing.T) {
	members := []member.Member{
		{ID: "m1", DocumentNumber: "12345678"},
	}
	events := []income.Event{dues("12345678", 50)}

	statuses := member.ReconcilePayments(members, events)
	require.Equal(t, []member.PaymentStatus{member.PaymentUnpaid}, statuses)
}

func TestReconcilePayments_DuplicateEventsAreMembershipNotCount(t *testing.T) {
	members := []member.Member{
		{ID: "m1", DocumentNumber: "12345678", EconomicStatus: member.EconomicLowIncome},
		{ID: "m2", DocumentNumber: "87654321", EconomicStatus: member.EconomicLowIncome},
	}
	events := []income.Event{
		dues("12345678", 10),
		dues("12345678", 10),
		dues("12345678", 10),
	}

	statuses := member.ReconcilePayments(members, events)
	require.Equal(t, []member.PaymentStatus{member.PaymentPaid, member.PaymentUnpaid}, statuses)
}

func TestReconcilePayments_OrderPreservingAndDeterministic(t *testing.T) {
	members := []member.Member{
		{ID: "m1", DocumentNumber: "11111111", EconomicStatus: member.EconomicLowIncome},
		{ID: "m2", DocumentNumber: "22222222", EconomicStatus: member.EconomicExtremeLowIncome},
		{ID: "m3", DocumentNumber: "33333333", EconomicStatus: member.EconomicLowIncome},
		{ID: "m4"},
	}
	events := []income.Event{dues("11111111", 20), dues("44444444", 20)}

	want := []member.PaymentStatus{
		member.PaymentPaid,
		member.PaymentExempt,
		member.PaymentUnpaid,
		member.PaymentUnpaid,
	}
	first := member.ReconcilePayments(members, events)
	require.Equal(t, want, first)

	// Same snapshots, same result.
	for range 5 {
		require.Equal(t, first, member.ReconcilePayments(members, events))
	}
}

func TestPaymentsByID(t *testing.T) {
	members := []member.Member{
		{ID: "m1", DocumentNumber: "11111111", EconomicStatus: member.EconomicLowIncome},
		{ID: "m2", DocumentNumber: "22222222", EconomicStatus: member.EconomicExtremeLowIncome},
	}
	events := []income.Event{dues("11111111", 20)}

	byID := member.PaymentsByID(members, events)
	require.Equal(t, map[string]member.PaymentStatus{
		"m1": member.PaymentPaid,
		"m2": member.PaymentExempt,
	}, byID)
}
