// Package checkout builds the order draft for the direct-purchase path.
// "Buy now" bypasses the cart entirely: the draft is a pure transformation
// of product and shipper data, handed straight to the external checkout
// flow. It must never touch the guest cart or the cached server cart.
package checkout

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/haunguyen/shopfront/internal/domain/cart"
	"github.com/haunguyen/shopfront/internal/domain/product"
)

// Address is one entry of the shopper's address book.
type Address struct {
	Recipient string
	Phone     string
	Street    string
	City      string
	Default   bool
}

// Draft is a single-item order handed to the external checkout flow.
type Draft struct {
	ID              string
	Items           []cart.Item
	ShippingAddress Address
	SubTotal        decimal.Decimal
	TotalProduct    int
	UserID          string // empty for a guest purchase
	Category        string
}

// ShippingAddress picks the address marked default, falling back to the
// first entry, then to the zero Address when the book is empty.
func ShippingAddress(book []Address) Address {
	for _, a := range book {
		if a.Default {
			return a
		}
	}
	if len(book) > 0 {
		return book[0]
	}
	return Address{}
}

// BuildDraft assembles the buy-now order draft for quantity units of p.
func BuildDraft(p product.Product, quantity int, userID string, book []Address) (Draft, error) {
	if !p.Available() {
		return Draft{}, &cart.ValidationError{Field: "product", Reason: "out of stock"}
	}
	item := cart.Item{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.PrimaryImage(),
		Quantity:  quantity,
	}
	if err := item.Validate(); err != nil {
		return Draft{}, err
	}
	return Draft{
		ID:              uuid.New().String(),
		Items:           []cart.Item{item},
		ShippingAddress: ShippingAddress(book),
		SubTotal:        p.Price.Mul(decimal.NewFromInt(int64(quantity))),
		TotalProduct:    1,
		UserID:          userID,
		Category:        p.Category,
	}, nil
}
