// Package cache implements the read-through cache in front of the remote
// cart and wishlist. Each key is an explicit state machine
// (Empty -> Fetching -> Fresh -> Stale -> Fetching ...) instead of an
// opaque query cache: mutations call Invalidate, readers call Fetch, and
// staleness plus re-fetch is the only propagation path between them.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"golang.org/x/sync/singleflight"
)

// ErrDisabled is returned by Fetch while the accessor's gate is closed.
// The remote accessors are gated on authentication: a guest must never
// cause a network call.
var ErrDisabled = errors.New("cache: accessor disabled")

// State is the freshness of the cached value.
type State int

const (
	// StateEmpty means no value has ever been fetched.
	StateEmpty State = iota
	// StateFresh means the cached value may be served without a fetch.
	StateFresh
	// StateStale means the value must be re-fetched before serving.
	StateStale
)

// FetchFunc loads the canonical value from the remote service.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Accessor caches one remote value under a single key.
//
// Concurrent Fetch calls for a stale value collapse into exactly one
// network round-trip. Invalidate bumps a generation counter; a fetch that
// started before the bump has its result discarded instead of being
// committed out of order, so the last invalidation always wins.
type Accessor[T any] struct {
	name    string
	enabled func() bool
	fetch   FetchFunc[T]

	mu            sync.Mutex
	value         T
	state         State
	gen           uint64
	lastFetchedAt time.Time

	sf singleflight.Group
}

// New builds an accessor. enabled is consulted on every Fetch; while it
// reports false the accessor never touches the network.
func New[T any](name string, enabled func() bool, fetch FetchFunc[T]) *Accessor[T] {
	return &Accessor[T]{name: name, enabled: enabled, fetch: fetch}
}

// Fetch returns the cached value when fresh, otherwise performs one network
// round-trip (shared with any concurrent callers) and caches the result.
func (a *Accessor[T]) Fetch(ctx context.Context) (T, error) {
	var zero T
	if !a.enabled() {
		return zero, ErrDisabled
	}

	a.mu.Lock()
	if a.state == StateFresh {
		v := a.value
		a.mu.Unlock()
		return v, nil
	}
	a.mu.Unlock()

	v, err, _ := a.sf.Do(a.name, func() (any, error) {
		a.mu.Lock()
		gen := a.gen
		a.mu.Unlock()

		val, err := a.fetch(ctx)
		if err != nil {
			return nil, err
		}

		a.mu.Lock()
		if a.gen == gen {
			a.value = val
			a.state = StateFresh
			a.lastFetchedAt = time.Now()
		}
		// A mismatched generation means Invalidate ran mid-flight: the
		// result is handed to waiters but not committed, and the next
		// Fetch round-trips again.
		a.mu.Unlock()
		return val, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// Invalidate marks the cached value stale so the next Fetch round-trips.
// It is called after every mutation that targets the remote store.
func (a *Accessor[T]) Invalidate() {
	a.mu.Lock()
	if a.state != StateEmpty {
		a.state = StateStale
	}
	a.gen++
	a.mu.Unlock()
	a.sf.Forget(a.name)
}

// Reset drops the cached value entirely, returning to StateEmpty. Called on
// logout so nothing leaks into the next session.
func (a *Accessor[T]) Reset() {
	a.mu.Lock()
	var zero T
	a.value = zero
	a.state = StateEmpty
	a.lastFetchedAt = time.Time{}
	a.gen++
	a.mu.Unlock()
	a.sf.Forget(a.name)
}

// Peek returns the cached value without fetching, plus its state.
func (a *Accessor[T]) Peek() (T, State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value, a.state
}

// Apply overlays v onto the cache without changing state or generation.
// Optimistic mutations use it for the tentative value and again to roll the
// prior value back on failure.
func (a *Accessor[T]) Apply(v T) {
	a.mu.Lock()
	a.value = v
	a.mu.Unlock()
}

// LastFetchedAt returns the commit time of the current value, or the zero
// time when nothing has been committed.
func (a *Accessor[T]) LastFetchedAt() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastFetchedAt
}
