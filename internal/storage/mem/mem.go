// Package mem implements storage.Store in memory. It backs tests and the
// degraded mode entered when durable storage becomes unavailable.
package mem

import (
	"sync"

	"github.com/haunguyen/shopfront/internal/storage"
)

// Store is a mutex-guarded map of key to value.
type Store struct {
	mu sync.RWMutex
	m  map[string][]byte

	// FailWrites makes every Write return storage.ErrUnavailable. Tests use
	// it to simulate quota errors.
	FailWrites bool
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{m: make(map[string][]byte)}
}

func (s *Store) Read(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *Store) Write(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return storage.ErrUnavailable
	}
	v := make([]byte, len(value))
	copy(v, value)
	s.m[key] = v
	return nil
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}
