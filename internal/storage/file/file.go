// Package file implements storage.Store on the local filesystem: one file
// per key under a data directory, written atomically via rename so a crash
// mid-write never leaves a torn value.
package file

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"

	"github.com/haunguyen/shopfront/internal/storage"
)

// Store persists each key as <dir>/<key>.json.
type Store struct {
	dir string
}

// New creates the data directory if needed and returns a Store over it.
// A directory that cannot be created maps to storage.ErrUnavailable.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(storage.ErrUnavailable, err.Error())
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	// Keys are internal identifiers ("cart", "session"); the replacement
	// guards against path separators sneaking in, not against hostile input.
	safe := strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, safe+".json")
}

// Read returns the stored bytes for key, or storage.ErrNotFound.
func (s *Store) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.ErrNotFound
		}
		return nil, errors.Wrap(storage.ErrUnavailable, err.Error())
	}
	return data, nil
}

// Write stores value under key. The value is written to a temp file in the
// same directory, synced, then renamed over the target.
func (s *Store) Write(key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*")
	if err != nil {
		return errors.Wrap(storage.ErrUnavailable, err.Error())
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return errors.Wrap(storage.ErrUnavailable, err.Error())
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(storage.ErrUnavailable, err.Error())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(storage.ErrUnavailable, err.Error())
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return errors.Wrap(storage.ErrUnavailable, err.Error())
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(storage.ErrUnavailable, err.Error())
	}
	return nil
}

// Ping verifies the data directory is still writable. Used as a readiness
// check by the gateway.
func (s *Store) Ping() error {
	f, err := os.CreateTemp(s.dir, ".ping-*")
	if err != nil {
		return errors.Wrap(storage.ErrUnavailable, err.Error())
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
