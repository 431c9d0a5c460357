package padron_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hvillega/padron"
	"github.com/hvillega/padron/account"
	"github.com/hvillega/padron/collaborator"
	"github.com/hvillega/padron/expense"
	"github.com/hvillega/padron/income"
	"github.com/hvillega/padron/member"
	"github.com/hvillega/padron/store"
)

func newLookupServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			DocumentNumber string `json:"document_number"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.DocumentNumber != "12345678" {
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": "document not found",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]string{
				"name":       "Ana",
				"surname":    "Quispe",
				"address":    "Jr. Los Pinos 123",
				"district":   "San Juan",
				"province":   "Lima",
				"department": "Lima",
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T) *padron.Client {
	t.Helper()
	srv := newLookupServer(t)
	cfg := padron.Config{
		Store: padron.StoreConfig{
			Backend: "sqlite",
			Path:    filepath.Join(t.TempDir(), "padron.db"),
		},
		Lookup: padron.LookupConfig{BaseURL: srv.URL},
		Log:    padron.LogConfig{Level: "error"},
	}
	c, err := padron.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClient_RegisterMemberWithEnrichment(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	require.NoError(t, c.Wait(ctx))

	m, err := c.RegisterMember(ctx, member.Member{
		DocumentNumber: "12345678",
		EconomicStatus: member.EconomicLowIncome,
	})
	require.NoError(t, err)
	require.NotEmpty(t, m.ID)
	require.False(t, m.CreatedAt.IsZero())
	require.Equal(t, "Ana", m.FirstName)
	require.Equal(t, "Quispe", m.LastName)
	require.Equal(t, "San Juan", m.District)

	require.NoError(t, c.Wait(ctx))
	recs := c.Members().Records()
	require.Len(t, recs, 1)
	require.Equal(t, m.ID, recs[0].ID)
}

func TestClient_RegisterMemberLookupMissDegradesToManualEntry(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	require.NoError(t, c.Wait(ctx))

	// Lookup has no match and no names were given: plain validation error.
	_, err := c.RegisterMember(ctx, member.Member{DocumentNumber: "99999999"})
	require.ErrorIs(t, err, member.ErrInvalidInput)

	// Names supplied manually still work when the lookup has no match.
	m, err := c.RegisterMember(ctx, member.Member{
		DocumentNumber: "99999999",
		FirstName:      "Rosa",
		LastName:       "Mamani",
	})
	require.NoError(t, err)
	require.Equal(t, "Rosa", m.FirstName)
}

func TestClient_DuplicateDocumentNumber(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	require.NoError(t, c.Wait(ctx))

	_, err := c.RegisterMember(ctx, member.Member{
		DocumentNumber: "12345678",
		EconomicStatus: member.EconomicLowIncome,
	})
	require.NoError(t, err)

	_, err = c.RegisterMember(ctx, member.Member{
		DocumentNumber: "12345678",
		FirstName:      "Otra",
		LastName:       "Persona",
	})
	require.ErrorIs(t, err, store.ErrUniqueViolation)

	require.NoError(t, c.Wait(ctx))
	require.Len(t, c.Members().Records(), 1)
}

func TestClient_PaymentsAndDashboard(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	require.NoError(t, c.Wait(ctx))

	paid, err := c.RegisterMember(ctx, member.Member{
		DocumentNumber: "12345678",
		EconomicStatus: member.EconomicLowIncome,
	})
	require.NoError(t, err)
	exempt, err := c.RegisterMember(ctx, member.Member{
		FirstName:      "Rosa",
		LastName:       "Mamani",
		DocumentNumber: "22222222",
		EconomicStatus: member.EconomicExtremeLowIncome,
	})
	require.NoError(t, err)
	unpaid, err := c.RegisterMember(ctx, member.Member{
		FirstName:      "Luz",
		LastName:       "Apaza",
		DocumentNumber: "33333333",
		EconomicStatus: member.EconomicLowIncome,
	})
	require.NoError(t, err)

	acct, err := c.AddAccount(ctx, account.Account{
		Name:           "Caja principal",
		OpeningBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = c.RecordIncome(ctx, income.Event{
		MemberDocument: paid.DocumentNumber,
		Amount:         decimal.NewFromInt(50),
		Kind:           income.KindDues,
		AccountID:      acct.ID,
	})
	require.NoError(t, err)

	_, err = c.RecordExpense(ctx, expense.Expense{
		Description: "Print flyers",
		Category:    "events",
		Amount:      decimal.NewFromInt(20),
		AccountID:   acct.ID,
	})
	require.NoError(t, err)

	require.NoError(t, c.Wait(ctx))

	members, statuses := c.MemberPayments()
	require.Len(t, members, 3)
	require.Equal(t, member.PaymentPaid, statuses[paid.ID])
	require.Equal(t, member.PaymentExempt, statuses[exempt.ID])
	require.Equal(t, member.PaymentUnpaid, statuses[unpaid.ID])

	s := c.Dashboard()
	require.True(t, s.TotalIncome.Equal(decimal.NewFromInt(50)))
	require.True(t, s.TotalExpenses.Equal(decimal.NewFromInt(20)))
	require.True(t, s.Net.Equal(decimal.NewFromInt(30)))
	require.Len(t, s.AccountBalances, 1)
	require.True(t, s.AccountBalances[0].Balance.Equal(decimal.NewFromInt(130)))
	require.Equal(t, 1, s.Members.Paid)
	require.Equal(t, 1, s.Members.Exempt)
	require.Equal(t, 1, s.Members.Unpaid)

	// Reclassifying the unpaid member flows through to the derived view.
	_, err = c.Members().Update(ctx, unpaid.ID, store.Row{
		"economic_status": string(member.EconomicExtremeLowIncome),
	})
	require.NoError(t, err)
	require.NoError(t, c.Wait(ctx))

	_, statuses = c.MemberPayments()
	require.Equal(t, member.PaymentExempt, statuses[unpaid.ID])
}

func TestClient_ValidationErrors(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	require.NoError(t, c.Wait(ctx))

	_, err := c.RecordIncome(ctx, income.Event{Kind: income.KindDues})
	require.ErrorIs(t, err, income.ErrInvalidInput)

	_, err = c.RecordExpense(ctx, expense.Expense{Amount: decimal.NewFromInt(5)})
	require.ErrorIs(t, err, expense.ErrInvalidInput)

	_, err = c.AddAccount(ctx, account.Account{})
	require.ErrorIs(t, err, account.ErrInvalidInput)

	_, err = c.AddCollaborator(ctx, collaborator.Collaborator{FirstName: "Ana"})
	require.ErrorIs(t, err, collaborator.ErrInvalidInput)
}

func TestClient_CollaboratorLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)
	require.NoError(t, c.Wait(ctx))

	col, err := c.AddCollaborator(ctx, collaborator.Collaborator{
		FirstName: "Pedro",
		LastName:  "Huaman",
		Role:      "driver",
	})
	require.NoError(t, err)
	require.NoError(t, c.Wait(ctx))
	require.Len(t, c.Collaborators().Records(), 1)

	require.NoError(t, c.Collaborators().Remove(ctx, col.ID))
	require.NoError(t, c.Wait(ctx))
	require.Empty(t, c.Collaborators().Records())
}
