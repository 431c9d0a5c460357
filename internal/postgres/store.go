// Package postgres provides a Postgres-backed implementation of the remote
// collection store, mirroring the sqlite backend. It is the deployment
// target when the organization's records live in a hosted database.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver

	"github.com/hvillega/padron/store"
)

// Store implements store.Store over a Postgres database.
type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// New opens a Postgres connection and ensures the collection tables exist.
func New(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	migration := `
CREATE TABLE IF NOT EXISTS accounts (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    opening_balance NUMERIC(14, 2) NOT NULL DEFAULT 0,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS members (
    id TEXT PRIMARY KEY,
    document_number TEXT NOT NULL DEFAULT '',
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    address TEXT NOT NULL DEFAULT '',
    district TEXT NOT NULL DEFAULT '',
    province TEXT NOT NULL DEFAULT '',
    department TEXT NOT NULL DEFAULT '',
    birth_date TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    economic_status TEXT NOT NULL DEFAULT ''
        CHECK(economic_status IN ('', 'low_income', 'extreme_low_income')),
    created_at TIMESTAMPTZ NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_member_document ON members(document_number)
    WHERE document_number <> '';

CREATE TABLE IF NOT EXISTS income_events (
    id TEXT PRIMARY KEY,
    member_document TEXT NOT NULL DEFAULT '',
    amount NUMERIC(14, 2) NOT NULL,
    kind TEXT NOT NULL CHECK(kind IN ('dues', 'donation', 'event', 'other')),
    description TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL DEFAULT '',
    account_id TEXT REFERENCES accounts(id),
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_income_member ON income_events(member_document);
CREATE INDEX IF NOT EXISTS idx_income_account ON income_events(account_id);

CREATE TABLE IF NOT EXISTS expenses (
    id TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    amount NUMERIC(14, 2) NOT NULL,
    date TEXT NOT NULL DEFAULT '',
    account_id TEXT REFERENCES accounts(id),
    created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_expense_account ON expenses(account_id);

CREATE TABLE IF NOT EXISTS collaborators (
    id TEXT PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    document_number TEXT NOT NULL DEFAULT '',
    role TEXT NOT NULL,
    phone TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Select returns all rows of the collection matching the filter.
func (s *Store) Select(ctx context.Context, collection string, filter store.Filter, sort *store.Sort) ([]store.Row, error) {
	cols, err := columnsFor(collection)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("SELECT * FROM " + collection)
	args := make([]any, 0, len(filter))
	for i, k := range slices.Sorted(maps.Keys(filter)) {
		if !cols[k] {
			return nil, fmt.Errorf("%w: unknown filter field %q", store.ErrInvalid, k)
		}
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		args = append(args, filter[k])
		sb.WriteString(`"` + k + `" = $` + strconv.Itoa(len(args)))
	}

	orderField, direction := "created_at", "ASC"
	if sort != nil {
		if !cols[sort.Field] {
			return nil, fmt.Errorf("%w: unknown sort field %q", store.ErrInvalid, sort.Field)
		}
		orderField = sort.Field
		if sort.Desc {
			direction = "DESC"
		}
	}
	sb.WriteString(` ORDER BY "` + orderField + `" ` + direction)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// Insert creates a row, assigning id and created_at server-side.
func (s *Store) Insert(ctx context.Context, collection string, fields store.Row) (store.Row, error) {
	cols, err := columnsFor(collection)
	if err != nil {
		return nil, err
	}
	if err := checkMutableFields(cols, fields); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	names := []string{`"id"`, `"created_at"`}
	args := []any{id, time.Now().UTC()}
	placeholders := []string{"$1", "$2"}
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		names = append(names, `"`+k+`"`)
		args = append(args, fields[k])
		placeholders = append(placeholders, "$"+strconv.Itoa(len(args)))
	}

	query := "INSERT INTO " + collection + " (" + strings.Join(names, ", ") + ") VALUES (" +
		strings.Join(placeholders, ", ") + ")"
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, mapError(err)
	}

	return s.getRow(ctx, collection, id)
}

// Update applies a partial update addressed by id.
func (s *Store) Update(ctx context.Context, collection string, id string, fields store.Row) (store.Row, error) {
	cols, err := columnsFor(collection)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields to update", store.ErrInvalid)
	}
	if err := checkMutableFields(cols, fields); err != nil {
		return nil, err
	}

	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		args = append(args, fields[k])
		sets = append(sets, `"`+k+`" = $`+strconv.Itoa(len(args)))
	}
	args = append(args, id)

	query := "UPDATE " + collection + " SET " + strings.Join(sets, ", ") +
		" WHERE id = $" + strconv.Itoa(len(args))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, mapError(err)
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	return s.getRow(ctx, collection, id)
}

// Delete removes the row with the given id.
func (s *Store) Delete(ctx context.Context, collection string, id string) error {
	if _, err := columnsFor(collection); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+collection+" WHERE id = $1", id)
	if err != nil {
		return mapError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) getRow(ctx context.Context, collection, id string) (store.Row, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+collection+" WHERE id = $1", id)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	scanned, err := scanRows(rows)
	if err != nil {
		return nil, err
	}
	if len(scanned) == 0 {
		return nil, store.ErrNotFound
	}
	return scanned[0], nil
}

func scanRows(rows *sql.Rows) ([]store.Row, error) {
	names, err := rows.Columns()
	if err != nil {
		return nil, mapError(err)
	}

	out := []store.Row{}
	for rows.Next() {
		cells := make([]any, len(names))
		for i := range cells {
			cells[i] = new(any)
		}
		if err := rows.Scan(cells...); err != nil {
			return nil, mapError(err)
		}
		row := make(store.Row, len(names))
		for i, name := range names {
			row[name] = normalizeValue(*(cells[i].(*any)))
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano)
	default:
		return v
	}
}
