// Package dashboard computes the summary figures shown on the
// organization's dashboard. All functions are pure over the snapshots they
// are given; nothing here is persisted or cached.
package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/hvillega/padron/account"
	"github.com/hvillega/padron/expense"
	"github.com/hvillega/padron/income"
	"github.com/hvillega/padron/member"
)

// AccountBalance is one account's current balance: opening balance plus
// attributed income minus attributed expenses.
type AccountBalance struct {
	AccountID string
	Name      string
	Balance   decimal.Decimal
}

// PaymentCounts breaks down the member roster by derived payment status.
type PaymentCounts struct {
	Total  int
	Paid   int
	Exempt int
	Unpaid int
}

// Summary holds the dashboard figures.
type Summary struct {
	TotalIncome        decimal.Decimal
	TotalExpenses      decimal.Decimal
	Net                decimal.Decimal
	IncomeByKind       map[income.Kind]decimal.Decimal
	ExpensesByCategory map[string]decimal.Decimal
	AccountBalances    []AccountBalance
	Members            PaymentCounts
}

// Build computes the summary from the four collection snapshots.
// AccountBalances preserves the order of the accounts input.
func Build(members []member.Member, events []income.Event, expenses []expense.Expense, accounts []account.Account) Summary {
	s := Summary{
		TotalIncome:        decimal.Zero,
		TotalExpenses:      decimal.Zero,
		IncomeByKind:       make(map[income.Kind]decimal.Decimal),
		ExpensesByCategory: make(map[string]decimal.Decimal),
	}

	incomeByAccount := make(map[string]decimal.Decimal)
	for _, e := range events {
		s.TotalIncome = s.TotalIncome.Add(e.Amount)
		s.IncomeByKind[e.Kind] = s.IncomeByKind[e.Kind].Add(e.Amount)
		if e.AccountID != "" {
			incomeByAccount[e.AccountID] = incomeByAccount[e.AccountID].Add(e.Amount)
		}
	}

	expenseByAccount := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		s.TotalExpenses = s.TotalExpenses.Add(e.Amount)
		s.ExpensesByCategory[e.Category] = s.ExpensesByCategory[e.Category].Add(e.Amount)
		if e.AccountID != "" {
			expenseByAccount[e.AccountID] = expenseByAccount[e.AccountID].Add(e.Amount)
		}
	}

	s.Net = s.TotalIncome.Sub(s.TotalExpenses)

	s.AccountBalances = make([]AccountBalance, 0, len(accounts))
	for _, a := range accounts {
		balance := a.OpeningBalance.Add(incomeByAccount[a.ID]).Sub(expenseByAccount[a.ID])
		s.AccountBalances = append(s.AccountBalances, AccountBalance{
			AccountID: a.ID,
			Name:      a.Name,
			Balance:   balance,
		})
	}

	statuses := member.ReconcilePayments(members, events)
	s.Members.Total = len(members)
	for _, st := range statuses {
		switch st {
		case member.PaymentPaid:
			s.Members.Paid++
		case member.PaymentExempt:
			s.Members.Exempt++
		default:
			s.Members.Unpaid++
		}
	}

	return s
}
