package localcart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haunguyen/shopfront/internal/domain/cart"
	"github.com/haunguyen/shopfront/internal/storage"
	"github.com/haunguyen/shopfront/internal/storage/mem"
)

func item(id string, price int64, qty int) cart.Item {
	return cart.Item{
		ProductID: id,
		Name:      "product " + id,
		Price:     decimal.NewFromInt(price),
		Quantity:  qty,
	}
}

func TestGet_EmptyWhenNothingPersisted(t *testing.T) {
	s := New(mem.New())

	c := s.Get()
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalProduct)
	assert.True(t, decimal.Zero.Equal(c.SubTotal))
}

func TestSetItems_PersistsAndRecomputes(t *testing.T) {
	backend := mem.New()
	s := New(backend)

	c, err := s.SetItems([]cart.Item{item("p1", 100000, 2)})
	require.NoError(t, err)
	assert.Equal(t, 1, c.TotalProduct)
	assert.True(t, decimal.NewFromInt(200000).Equal(c.SubTotal))

	// A fresh store over the same backend sees the persisted cart.
	reopened := New(backend)
	assert.Equal(t, 1, reopened.Get().TotalProduct)
	assert.True(t, decimal.NewFromInt(200000).Equal(reopened.Get().SubTotal))
}

func TestWrites_ImmediatelyVisibleToReaders(t *testing.T) {
	s := New(mem.New())

	_, err := s.Update(func(items []cart.Item) []cart.Item {
		return cart.Merge(items, item("p1", 100000, 1))
	})
	require.NoError(t, err)

	// Any reader in the process sees the write with no propagation delay:
	// the badge and the cart page can never disagree.
	assert.Equal(t, 1, s.Get().TotalProduct)
}

func TestUpdate_MergesByProductID(t *testing.T) {
	s := New(mem.New())

	for range 2 {
		_, err := s.Update(func(items []cart.Item) []cart.Item {
			return cart.Merge(items, item("p1", 100000, 1))
		})
		require.NoError(t, err)
	}

	c := s.Get()
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
}

func TestPersistenceFailure_KeepsInMemoryState(t *testing.T) {
	backend := mem.New()
	backend.FailWrites = true
	s := New(backend)

	c, err := s.SetItems([]cart.Item{item("p1", 100000, 1)})
	require.ErrorIs(t, err, storage.ErrUnavailable)

	// The returned snapshot and subsequent reads still reflect the write:
	// the shopper keeps a working cart for the session.
	assert.Equal(t, 1, c.TotalProduct)
	assert.Equal(t, 1, s.Get().TotalProduct)
}

func TestClear(t *testing.T) {
	backend := mem.New()
	s := New(backend)

	_, err := s.SetItems([]cart.Item{item("p1", 100000, 1)})
	require.NoError(t, err)
	require.NoError(t, s.Clear())

	assert.Equal(t, 0, s.Get().TotalProduct)
	assert.Equal(t, 0, New(backend).Get().TotalProduct)
}

func TestCorruptPersistedValue_StartsEmpty(t *testing.T) {
	backend := mem.New()
	require.NoError(t, backend.Write(Key, []byte("not json")))

	s := New(backend)
	assert.Equal(t, 0, s.Get().TotalProduct)
}
