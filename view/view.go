// Package view implements a cached, queryable client-side view over one
// remote collection. A View fetches matching records into memory, exposes
// them as a snapshot list, and offers create/update/remove operations that
// write to the store and resynchronize the cache.
//
// The remote store is the single source of truth; the cached list is valid
// only for the filter it was fetched under. Every fetch is tagged with the
// generation current when it was issued, and its result is applied only if
// that generation is still current when it completes. Replacing the filter,
// forcing a refresh, or closing the view bumps or invalidates the
// generation, so out-of-order responses from superseded fetches are
// discarded instead of overwriting newer state.
package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hvillega/padron/store"
)

// ErrClosed is returned by operations on a closed view.
var ErrClosed = errors.New("view closed")

// Config configures a View.
type Config struct {
	// Collection is the remote collection name.
	Collection string
	// Filter restricts which records are fetched. Nil fetches all.
	Filter store.Filter
	// Sort orders fetched records. Nil leaves backend default order.
	Sort *store.Sort
}

// View maintains a cached list of T records from one remote collection.
// Each View is independent: two views over the same collection hold
// separate caches and can transiently disagree until both refetch.
type View[T any] struct {
	st         store.Store
	logger     *slog.Logger
	collection string
	sort       *store.Sort

	mu      sync.Mutex
	filter  store.Filter
	gen     uint64
	records []T
	lastErr error
	done    chan struct{} // non-nil while a fetch for the current generation is in flight
	closed  bool
}

// Open begins managing a collection and issues the initial fetch under the
// configured filter. ctx bounds the initial fetch only.
func Open[T any](ctx context.Context, st store.Store, logger *slog.Logger, cfg Config) *View[T] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	v := &View[T]{
		st:         st,
		logger:     logger,
		collection: cfg.Collection,
		sort:       cfg.Sort,
		filter:     cfg.Filter,
	}
	v.mu.Lock()
	v.beginFetchLocked(ctx)
	v.mu.Unlock()
	return v
}

// Records returns a snapshot copy of the cached records. While a fetch is
// in flight the snapshot may be stale but is always renderable; it is empty
// if no fetch has ever completed.
func (v *View[T]) Records() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]T, len(v.records))
	copy(out, v.records)
	return out
}

// Loading reports whether a fetch for the current filter is in flight.
func (v *View[T]) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.done != nil
}

// Err returns the error of the most recent completed fetch, or nil if it
// succeeded. Fetch failures leave Records at its last known value.
func (v *View[T]) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

// SetFilter replaces the active filter and issues a new fetch. Any fetch
// still in flight under the old filter is superseded: its result will be
// discarded on arrival even if it completes after the new fetch.
func (v *View[T]) SetFilter(ctx context.Context, f store.Filter) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.gen++
	v.filter = f
	v.beginFetchLocked(ctx)
}

// Refresh forces a refetch under the current filter regardless of cache
// state, superseding any fetch in flight.
func (v *View[T]) Refresh(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.gen++
	v.beginFetchLocked(ctx)
}

// Wait blocks until the cache is current for the active filter: either no
// fetch is in flight, or the in-flight fetch (or a newer one superseding
// it) has been applied. Returns ctx.Err() if ctx expires first.
func (v *View[T]) Wait(ctx context.Context) error {
	v.mu.Lock()
	done := v.done
	v.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Create sends fields to the store and returns the created record with its
// server-assigned id and timestamp, so the caller can chain on it without
// waiting for the cache to catch up. On success a refetch under the current
// filter is triggered, detached from ctx so the caller's cancellation does
// not abandon resynchronization. On failure the cache is unchanged.
// Server-assigned fields are stripped from the input before sending.
func (v *View[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if v.isClosed() {
		return zero, ErrClosed
	}
	fields, err := encodeFields(rec)
	if err != nil {
		return zero, fmt.Errorf("encoding %s record: %w", v.collection, err)
	}
	delete(fields, "id")
	delete(fields, "created_at")

	row, err := v.st.Insert(ctx, v.collection, fields)
	if err != nil {
		return zero, err
	}
	created, err := decodeRow[T](row)
	if err != nil {
		return zero, fmt.Errorf("decoding created %s record: %w", v.collection, err)
	}
	v.refetchAfterMutation(ctx)
	return created, nil
}

// Update sends a partial update addressed by id and returns the full
// updated record. On success a refetch is triggered; on failure the cache
// is unchanged.
func (v *View[T]) Update(ctx context.Context, id string, fields store.Row) (T, error) {
	var zero T
	if v.isClosed() {
		return zero, ErrClosed
	}
	row, err := v.st.Update(ctx, v.collection, id, fields)
	if err != nil {
		return zero, err
	}
	updated, err := decodeRow[T](row)
	if err != nil {
		return zero, fmt.Errorf("decoding updated %s record: %w", v.collection, err)
	}
	v.refetchAfterMutation(ctx)
	return updated, nil
}

// Remove deletes the record with the given id. On success a refetch is
// triggered; on failure the cache is unchanged.
func (v *View[T]) Remove(ctx context.Context, id string) error {
	if v.isClosed() {
		return ErrClosed
	}
	if err := v.st.Delete(ctx, v.collection, id); err != nil {
		return err
	}
	v.refetchAfterMutation(ctx)
	return nil
}

// Close stops the view. Results of any fetch still in flight are discarded
// on arrival, and all further operations fail with ErrClosed.
func (v *View[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	if v.done != nil {
		close(v.done)
		v.done = nil
	}
}

func (v *View[T]) isClosed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

func (v *View[T]) refetchAfterMutation(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.gen++
	v.beginFetchLocked(context.WithoutCancel(ctx))
}

// beginFetchLocked issues a fetch for the current generation and filter.
// Caller must hold v.mu. An existing done channel is reused so waiters are
// only woken once the newest fetch lands.
func (v *View[T]) beginFetchLocked(ctx context.Context) {
	if v.done == nil {
		v.done = make(chan struct{})
	}
	go v.fetch(ctx, v.gen, v.filter)
}

func (v *View[T]) fetch(ctx context.Context, gen uint64, filter store.Filter) {
	rows, err := v.st.Select(ctx, v.collection, filter, v.sort)
	var recs []T
	if err == nil {
		recs, err = decodeRows[T](rows)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || gen != v.gen {
		v.logger.Debug("discarding superseded fetch result",
			"collection", v.collection, "generation", gen)
		return
	}
	if err != nil {
		v.lastErr = err
		v.logger.Warn("fetch failed", "collection", v.collection, "error", err)
	} else {
		v.records = recs
		v.lastErr = nil
	}
	close(v.done)
	v.done = nil
}
