package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hvillega/padron/store"
)

// tableColumns whitelists the collections and their fields. Filter, sort
// and mutation fields are checked against it before any SQL is built.
var tableColumns = map[string]map[string]bool{
	"accounts":      columnSet("id", "name", "description", "opening_balance", "created_at"),
	"members":       columnSet("id", "document_number", "first_name", "last_name", "address", "district", "province", "department", "birth_date", "phone", "economic_status", "created_at"),
	"income_events": columnSet("id", "member_document", "amount", "kind", "description", "date", "account_id", "created_at"),
	"expenses":      columnSet("id", "description", "category", "amount", "date", "account_id", "created_at"),
	"collaborators": columnSet("id", "first_name", "last_name", "document_number", "role", "phone", "created_at"),
}

func columnSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// Store implements store.Store over a SQLite database.
type Store struct {
	db *DB
}

var _ store.Store = (*Store)(nil)

// NewStore creates a new Store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
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
		sb.WriteString(`"` + k + `" = ?`)
		args = append(args, filter[k])
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
	args := []any{id, time.Now().UTC().Format(time.RFC3339Nano)}
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		names = append(names, `"`+k+`"`)
		args = append(args, fields[k])
	}

	query := "INSERT INTO " + collection + " (" + strings.Join(names, ", ") + ") VALUES (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", ") + ")"
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
		sets = append(sets, `"`+k+`" = ?`)
		args = append(args, fields[k])
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, "UPDATE "+collection+" SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
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
	res, err := s.db.ExecContext(ctx, "DELETE FROM "+collection+" WHERE id = ?", id)
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
	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+collection+" WHERE id = ?", id)
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

func columnsFor(collection string) (map[string]bool, error) {
	cols, ok := tableColumns[collection]
	if !ok {
		return nil, fmt.Errorf("%w: unknown collection %q", store.ErrInvalid, collection)
	}
	return cols, nil
}

func checkMutableFields(cols map[string]bool, fields store.Row) error {
	for k := range fields {
		if k == "id" || k == "created_at" {
			return fmt.Errorf("%w: field %q is server-assigned", store.ErrInvalid, k)
		}
		if !cols[k] {
			return fmt.Errorf("%w: unknown field %q", store.ErrInvalid, k)
		}
	}
	return nil
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
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
