package file

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haunguyen/shopfront/internal/storage"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestReadAbsentKey(t *testing.T) {
	s := newStore(t)

	_, err := s.Read("cart")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestWriteRead(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Write("cart", []byte(`{"items":[]}`)))

	data, err := s.Read("cart")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, string(data))
}

func TestWriteOverwrites(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Write("cart", []byte("old")))
	require.NoError(t, s.Write("cart", []byte("new")))

	data, err := s.Read("cart")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestDelete(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Write("session", []byte("x")))
	require.NoError(t, s.Delete("session"))

	_, err := s.Read("session")
	require.ErrorIs(t, err, storage.ErrNotFound)

	// Deleting again is a no-op.
	require.NoError(t, s.Delete("session"))
}

func TestSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s1, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Write("cart", []byte("persisted")))

	s2, err := New(dir)
	require.NoError(t, err)
	data, err := s2.Read("cart")
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(data))
}

func TestPing(t *testing.T) {
	require.NoError(t, newStore(t).Ping())
}
