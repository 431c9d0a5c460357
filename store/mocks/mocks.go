// Package mocks provides a testify mock of store.Store for unit tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hvillega/padron/store"
)

// Store is a mock for store.Store.
type Store struct {
	mock.Mock
}

func (m *Store) Select(ctx context.Context, collection string, filter store.Filter, sort *store.Sort) ([]store.Row, error) {
	args := m.Called(ctx, collection, filter, sort)
	if rows, ok := args.Get(0).([]store.Row); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Insert(ctx context.Context, collection string, fields store.Row) (store.Row, error) {
	args := m.Called(ctx, collection, fields)
	if row, ok := args.Get(0).(store.Row); ok {
		return row, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Update(ctx context.Context, collection string, id string, fields store.Row) (store.Row, error) {
	args := m.Called(ctx, collection, id, fields)
	if row, ok := args.Get(0).(store.Row); ok {
		return row, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Delete(ctx context.Context, collection string, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}
