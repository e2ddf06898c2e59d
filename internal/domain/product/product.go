package product

import (
	"github.com/shopspring/decimal"
)

// Product represents a catalog item as served by the remote shop API.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	OldPrice decimal.Decimal // zero when the product is not discounted
	Category string
	Images   []string
	InStock  int
	Rating   float64
}

// PrimaryImage returns the first catalog image, or "" when none exist.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Available reports whether the product can currently be purchased.
func (p Product) Available() bool {
	return p.InStock > 0
}
