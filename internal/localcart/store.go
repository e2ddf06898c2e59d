// Package localcart is the guest shopper's cart: durable, process-wide
// state that works without any network call. The authenticated cart lives
// on the server and is reached through the shop API instead.
package localcart

import (
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/haunguyen/shopfront/internal/domain/cart"
	"github.com/haunguyen/shopfront/internal/storage"
)

// Key is the storage key the guest cart persists under.
const Key = "cart"

// Store holds the guest cart. It keeps an in-memory snapshot that is the
// single source for readers in this process; every successful write both
// replaces the snapshot and persists synchronously, so the header badge and
// the cart page can never disagree within one render cycle.
//
// When the durable store fails, the snapshot is still updated and the write
// error is returned: the shopper keeps a working cart for the session and
// the caller surfaces a persistence warning.
type Store struct {
	mu      sync.Mutex
	backend storage.Store
	current cart.Cart
}

// New loads any persisted guest cart from backend. A missing key yields an
// empty cart; an unreadable or corrupt value is treated the same way rather
// than failing startup, since the guest cart is always recoverable by the
// shopper re-adding items.
func New(backend storage.Store) *Store {
	s := &Store{backend: backend, current: cart.Empty()}
	data, err := backend.Read(Key)
	if err != nil {
		return s
	}
	c, err := cart.Decode(jx.DecodeBytes(data))
	if err != nil {
		return s
	}
	s.current = c
	return s
}

// Get returns the current snapshot.
func (s *Store) Get() cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetItems replaces the item list, recomputes aggregates, persists, and
// returns the new snapshot. The returned error, if any, is a persistence
// failure: the in-memory snapshot has already been updated.
func (s *Store) SetItems(items []cart.Item) (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cart.New(items)
	return s.current, s.persistLocked()
}

// Update applies fn to the current items and stores the result. The whole
// read-modify-write runs under the store lock within one synchronous call,
// so interleaved updates cannot lose writes.
func (s *Store) Update(fn func(items []cart.Item) []cart.Item) (cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cart.New(fn(s.current.Items))
	return s.current, s.persistLocked()
}

// Clear resets to an empty cart and persists the empty state.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cart.Empty()
	return s.persistLocked()
}

func (s *Store) persistLocked() error {
	var e jx.Encoder
	cart.Encode(&e, s.current)
	if err := s.backend.Write(Key, e.Bytes()); err != nil {
		return errors.Wrap(err, "persist guest cart")
	}
	return nil
}
