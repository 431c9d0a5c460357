// Package store defines the remote collection API that every cached view
// talks to. The remote store owns authoritative state; everything the
// client holds is a cache built from these four operations.
package store

import "context"

// Row is one record as the store returns it: column name to scalar value.
// Values are the JSON-compatible kinds (string, int64, float64, bool, nil).
type Row map[string]any

// Filter restricts a Select to rows whose named fields equal the given
// values. An empty or nil filter matches every row in the collection.
type Filter map[string]any

// Sort orders a Select by a single named field.
type Sort struct {
	Field string
	Desc  bool
}

// Store is the remote collection API. Implementations assign record
// identifiers and creation timestamps on Insert; clients must not supply
// them (Insert fails with ErrInvalid if they do).
type Store interface {
	// Select returns all rows of the collection matching the filter,
	// optionally ordered. A nil sort leaves ordering to the backend's
	// default (creation time ascending).
	Select(ctx context.Context, collection string, filter Filter, sort *Sort) ([]Row, error)

	// Insert creates a row from the given fields and returns the stored
	// row including the server-assigned id and created_at.
	Insert(ctx context.Context, collection string, fields Row) (Row, error)

	// Update applies a partial update to the row with the given id and
	// returns the full updated row. Fails with ErrNotFound if no such
	// row exists.
	Update(ctx context.Context, collection string, id string, fields Row) (Row, error)

	// Delete removes the row with the given id. Fails with ErrNotFound
	// if no such row exists.
	Delete(ctx context.Context, collection string, id string) error
}
