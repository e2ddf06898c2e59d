package wishlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshot_DropsDuplicatesKeepsOrder(t *testing.T) {
	s := NewSnapshot([]string{"p2", "p1", "p2", "p3", "p1"})

	assert.Equal(t, []string{"p2", "p1", "p3"}, s.ProductIDs())
	assert.Equal(t, 3, s.Len())
}

func TestContains(t *testing.T) {
	s := NewSnapshot([]string{"p1"})

	assert.True(t, s.Contains("p1"))
	assert.False(t, s.Contains("p2"))
	assert.False(t, Empty().Contains("p1"))
}

func TestWith(t *testing.T) {
	s := Empty().With("p1")
	require.True(t, s.Contains("p1"))

	again := s.With("p1")
	assert.Equal(t, 1, again.Len())
}

func TestWithout(t *testing.T) {
	s := NewSnapshot([]string{"p1", "p2"})

	out := s.Without("p1")
	assert.False(t, out.Contains("p1"))
	assert.Equal(t, []string{"p2"}, out.ProductIDs())

	// Removing an absent member is a no-op.
	assert.Equal(t, 2, s.Without("missing").Len())
}

func TestSnapshotsAreValueLike(t *testing.T) {
	s := NewSnapshot([]string{"p1"})
	_ = s.With("p2")
	_ = s.Without("p1")

	// The original snapshot is unchanged by With/Without.
	assert.Equal(t, []string{"p1"}, s.ProductIDs())
}
