package cart

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested cart line does not exist.
var ErrNotFound = errors.New("cart item not found")

// ValidationError indicates a cart mutation was rejected before any store
// was touched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Item is a single cart line. Display order is insertion order.
type Item struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Image     string
	Quantity  int
}

// Validate checks the line invariants: quantity >= 1, price >= 0.
func (i Item) Validate() error {
	if i.ProductID == "" {
		return &ValidationError{Field: "productId", Reason: "required"}
	}
	if i.Quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if i.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}

// Cart holds the ordered lines plus aggregates derived from them.
// TotalProduct and SubTotal are never patched incrementally; New recomputes
// both from the items so they cannot drift.
type Cart struct {
	Items        []Item
	TotalProduct int
	SubTotal     decimal.Decimal
}

// Empty returns a cart with no items and zeroed aggregates.
func Empty() Cart {
	return Cart{SubTotal: decimal.Zero}
}

// New builds a cart from items, recomputing TotalProduct (distinct lines)
// and SubTotal (sum of price*quantity).
func New(items []Item) Cart {
	sub := decimal.Zero
	for _, it := range items {
		sub = sub.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return Cart{
		Items:        items,
		TotalProduct: len(items),
		SubTotal:     sub,
	}
}

// Merge adds item to the lines, incrementing the quantity of an existing
// line with the same productID rather than appending a duplicate. The input
// slice is not modified.
func Merge(items []Item, item Item) []Item {
	out := make([]Item, len(items), len(items)+1)
	copy(out, items)
	for i := range out {
		if out[i].ProductID == item.ProductID {
			out[i].Quantity += item.Quantity
			return out
		}
	}
	return append(out, item)
}

// Remove drops the line with the given productID. Removing an absent
// productID is a no-op.
func Remove(items []Item, productID string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}

// SetQuantity replaces the quantity of the line with the given productID.
// It returns ErrNotFound when no such line exists.
func SetQuantity(items []Item, productID string, quantity int) ([]Item, error) {
	out := make([]Item, len(items))
	copy(out, items)
	for i := range out {
		if out[i].ProductID == productID {
			out[i].Quantity = quantity
			return out, nil
		}
	}
	return nil, ErrNotFound
}
