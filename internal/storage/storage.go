// Package storage defines the durable key-value collaborator the cart core
// persists through. It mirrors the contract of an origin-scoped browser
// store: read returns the stored bytes or reports absence, writes are
// synchronous, and unavailability is a distinct, recoverable error class.
package storage

import "github.com/go-faster/errors"

var (
	// ErrNotFound is returned by Read when the key has never been written
	// or has been deleted.
	ErrNotFound = errors.New("storage: key not found")
	// ErrUnavailable is returned when the underlying medium cannot accept
	// the operation (quota exceeded, permissions, disabled storage). It is
	// non-fatal: callers degrade to in-memory state for the session.
	ErrUnavailable = errors.New("storage: unavailable")
)

// Store is a durable key-value store scoped to one shopper session.
type Store interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Delete(key string) error
}
