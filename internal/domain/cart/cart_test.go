package cart

import (
	"testing"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, price int64, qty int) Item {
	return Item{
		ProductID: id,
		Name:      "product " + id,
		Price:     decimal.NewFromInt(price),
		Image:     "https://cdn.example.com/" + id + ".jpg",
		Quantity:  qty,
	}
}

func TestNew_RecomputesAggregates(t *testing.T) {
	c := New([]Item{
		item("p1", 100000, 2),
		item("p2", 50000, 1),
	})

	assert.Equal(t, 2, c.TotalProduct)
	assert.True(t, decimal.NewFromInt(250000).Equal(c.SubTotal))
}

func TestEmpty_ZeroAggregates(t *testing.T) {
	c := Empty()

	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalProduct)
	assert.True(t, decimal.Zero.Equal(c.SubTotal))
}

func TestMerge_NewProductAppends(t *testing.T) {
	items := Merge(nil, item("p1", 100000, 1))
	items = Merge(items, item("p2", 50000, 3))

	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, "p2", items[1].ProductID)
}

func TestMerge_SameProductIncrementsQuantity(t *testing.T) {
	items := Merge(nil, item("p1", 100000, 1))
	items = Merge(items, item("p1", 100000, 2))

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	orig := []Item{item("p1", 100000, 1)}
	_ = Merge(orig, item("p1", 100000, 5))

	assert.Equal(t, 1, orig[0].Quantity)
}

func TestRemove_AbsentProductIsNoop(t *testing.T) {
	items := []Item{item("p1", 100000, 1)}
	out := Remove(items, "missing")

	assert.Equal(t, items, out)
}

func TestSetQuantity(t *testing.T) {
	items := []Item{item("p1", 100000, 1)}

	out, err := SetQuantity(items, "p1", 4)
	require.NoError(t, err)
	assert.Equal(t, 4, out[0].Quantity)
	assert.Equal(t, 1, items[0].Quantity)

	_, err = SetQuantity(items, "missing", 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestItemValidate(t *testing.T) {
	require.NoError(t, item("p1", 100000, 1).Validate())

	var valErr *ValidationError

	err := item("p1", 100000, 0).Validate()
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "quantity", valErr.Field)

	err = item("p1", -1, 1).Validate()
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "price", valErr.Field)

	err = item("", 100000, 1).Validate()
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "productId", valErr.Field)
}

func TestCodec_RoundTrip(t *testing.T) {
	in := New([]Item{
		item("p1", 100000, 2),
		item("p2", 50000, 1),
	})

	var e jx.Encoder
	Encode(&e, in)

	out, err := Decode(jx.DecodeBytes(e.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, in.TotalProduct, out.TotalProduct)
	assert.True(t, in.SubTotal.Equal(out.SubTotal))
	require.Len(t, out.Items, 2)
	assert.Equal(t, "p1", out.Items[0].ProductID)
	assert.True(t, decimal.NewFromInt(100000).Equal(out.Items[0].Price))
}

func TestDecode_IgnoresStoredAggregates(t *testing.T) {
	// Tampered aggregates must not survive a decode: the cart is rebuilt
	// from its items.
	raw := `{"items":[{"productId":"p1","name":"x","price":100000,"image":"","quantity":1}],"totalProduct":99,"subTotal":1}`

	c, err := Decode(jx.DecodeStr(raw))
	require.NoError(t, err)
	assert.Equal(t, 1, c.TotalProduct)
	assert.True(t, decimal.NewFromInt(100000).Equal(c.SubTotal))
}
