// Package padron is a record-keeper for small member organizations. It
// tracks titular members, income receipts, expenses, cash accounts and
// collaborators in a remote relational store, maintains cached views of
// each collection, and derives per-member payment status and dashboard
// summaries from the cached snapshots.
package padron

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hvillega/padron/account"
	"github.com/hvillega/padron/collaborator"
	"github.com/hvillega/padron/dashboard"
	"github.com/hvillega/padron/expense"
	"github.com/hvillega/padron/income"
	"github.com/hvillega/padron/internal/postgres"
	"github.com/hvillega/padron/internal/sqlite"
	"github.com/hvillega/padron/lookup"
	"github.com/hvillega/padron/member"
	"github.com/hvillega/padron/store"
	"github.com/hvillega/padron/view"
)

// Client owns one store handle and the cached views over the five
// collections. All views share the handle; each holds its own cache.
type Client struct {
	logger     *slog.Logger
	st         store.Store
	closeStore func() error
	lookup     *lookup.Client

	members       *view.View[member.Member]
	incomes       *view.View[income.Event]
	expenses      *view.View[expense.Expense]
	accounts      *view.View[account.Account]
	collaborators *view.View[collaborator.Collaborator]
}

// Open constructs a Client from configuration, opening the configured
// store backend. A nil logger builds one from cfg.Log.Level.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLogLevel(cfg.Log.Level),
		}))
	}

	var (
		st         store.Store
		closeStore func() error
	)
	switch cfg.Store.Backend {
	case "", "sqlite":
		db, err := sqlite.New(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, err
		}
		st = sqlite.NewStore(db)
		closeStore = db.Close
	case "postgres":
		pg, err := postgres.New(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		st = pg
		closeStore = pg.Close
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	c := New(ctx, st, logger)
	c.closeStore = closeStore
	if cfg.Lookup.BaseURL != "" {
		c.lookup = lookup.NewClient(cfg.Lookup.BaseURL)
	}
	return c, nil
}

// New constructs a Client over an already-open store. ctx bounds the
// initial fetches only.
func New(ctx context.Context, st store.Store, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		logger: logger,
		st:     st,
		members: view.Open[member.Member](ctx, st, logger, view.Config{
			Collection: member.Collection,
		}),
		incomes: view.Open[income.Event](ctx, st, logger, view.Config{
			Collection: income.Collection,
			Sort:       &store.Sort{Field: "created_at", Desc: true},
		}),
		expenses: view.Open[expense.Expense](ctx, st, logger, view.Config{
			Collection: expense.Collection,
			Sort:       &store.Sort{Field: "created_at", Desc: true},
		}),
		accounts: view.Open[account.Account](ctx, st, logger, view.Config{
			Collection: account.Collection,
		}),
		collaborators: view.Open[collaborator.Collaborator](ctx, st, logger, view.Config{
			Collection: collaborator.Collection,
		}),
	}
}

// Members returns the cached member view.
func (c *Client) Members() *view.View[member.Member] { return c.members }

// Incomes returns the cached income view.
func (c *Client) Incomes() *view.View[income.Event] { return c.incomes }

// Expenses returns the cached expense view.
func (c *Client) Expenses() *view.View[expense.Expense] { return c.expenses }

// Accounts returns the cached account view.
func (c *Client) Accounts() *view.View[account.Account] { return c.accounts }

// Collaborators returns the cached collaborator view.
func (c *Client) Collaborators() *view.View[collaborator.Collaborator] { return c.collaborators }

// RegisterMember validates and creates a member. When a lookup client is
// configured and name fields are missing, the registry is consulted to
// fill them in; lookup failure degrades to manual entry and never blocks
// the registration.
func (c *Client) RegisterMember(ctx context.Context, m member.Member) (member.Member, error) {
	if c.lookup != nil && m.DocumentNumber != "" && (m.FirstName == "" || m.LastName == "") {
		person, err := c.lookup.Find(ctx, m.DocumentNumber)
		if err != nil {
			c.logger.Warn("person lookup failed, continuing with manual entry",
				"document", m.DocumentNumber, "error", err)
		} else {
			m = enrich(m, person)
		}
	}
	if err := member.Validate(m); err != nil {
		return member.Member{}, err
	}
	return c.members.Create(ctx, m)
}

// RecordIncome validates and creates an income receipt.
func (c *Client) RecordIncome(ctx context.Context, e income.Event) (income.Event, error) {
	if err := income.Validate(e); err != nil {
		return income.Event{}, err
	}
	return c.incomes.Create(ctx, e)
}

// RecordExpense validates and creates an expense.
func (c *Client) RecordExpense(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	if err := expense.Validate(e); err != nil {
		return expense.Expense{}, err
	}
	return c.expenses.Create(ctx, e)
}

// AddAccount validates and creates a cash account.
func (c *Client) AddAccount(ctx context.Context, a account.Account) (account.Account, error) {
	if err := account.Validate(a); err != nil {
		return account.Account{}, err
	}
	return c.accounts.Create(ctx, a)
}

// AddCollaborator validates and creates a collaborator.
func (c *Client) AddCollaborator(ctx context.Context, col collaborator.Collaborator) (collaborator.Collaborator, error) {
	if err := collaborator.Validate(col); err != nil {
		return collaborator.Collaborator{}, err
	}
	return c.collaborators.Create(ctx, col)
}

// MemberPayments returns the current member snapshot with derived payment
// status keyed by member id. The statuses are recomputed from the member
// and income caches on every call; they are never stored.
func (c *Client) MemberPayments() ([]member.Member, map[string]member.PaymentStatus) {
	members := c.members.Records()
	events := c.incomes.Records()
	return members, member.PaymentsByID(members, events)
}

// Dashboard computes the summary figures from the current caches.
func (c *Client) Dashboard() dashboard.Summary {
	return dashboard.Build(c.members.Records(), c.incomes.Records(),
		c.expenses.Records(), c.accounts.Records())
}

// Refresh forces a refetch of every view.
func (c *Client) Refresh(ctx context.Context) {
	c.members.Refresh(ctx)
	c.incomes.Refresh(ctx)
	c.expenses.Refresh(ctx)
	c.accounts.Refresh(ctx)
	c.collaborators.Refresh(ctx)
}

// Wait blocks until every view's cache is current for its filter.
func (c *Client) Wait(ctx context.Context) error {
	for _, wait := range []func(context.Context) error{
		c.members.Wait, c.incomes.Wait, c.expenses.Wait,
		c.accounts.Wait, c.collaborators.Wait,
	} {
		if err := wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every view and the store handle.
func (c *Client) Close() error {
	c.members.Close()
	c.incomes.Close()
	c.expenses.Close()
	c.accounts.Close()
	c.collaborators.Close()
	if c.closeStore != nil {
		return c.closeStore()
	}
	return nil
}

func enrich(m member.Member, p *lookup.Person) member.Member {
	if m.FirstName == "" {
		m.FirstName = p.Name
	}
	if m.LastName == "" {
		m.LastName = p.Surname
	}
	if m.Address == "" {
		m.Address = p.Address
	}
	if m.District == "" {
		m.District = p.District
	}
	if m.Province == "" {
		m.Province = p.Province
	}
	if m.Department == "" {
		m.Department = p.Department
	}
	if m.BirthDate == "" {
		m.BirthDate = p.DateOfBirth
	}
	return m
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
