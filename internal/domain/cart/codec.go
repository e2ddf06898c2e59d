package cart

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// Encode writes the cart as a JSON object. Prices are emitted as plain
// numbers in integer currency units; aggregates are included so readers on
// the other side of the wire do not have to recompute them.
func Encode(e *jx.Encoder, c Cart) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, it := range c.Items {
					EncodeItem(e, it)
				}
			})
		})
		e.Field("totalProduct", func(e *jx.Encoder) {
			e.Int(c.TotalProduct)
		})
		e.Field("subTotal", func(e *jx.Encoder) {
			e.Num(jx.Num(c.SubTotal.String()))
		})
	})
}

// EncodeItem writes a single cart line as a JSON object.
func EncodeItem(e *jx.Encoder, it Item) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("productId", func(e *jx.Encoder) { e.Str(it.ProductID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(it.Name) })
		e.Field("price", func(e *jx.Encoder) { e.Num(jx.Num(it.Price.String())) })
		e.Field("image", func(e *jx.Encoder) { e.Str(it.Image) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(it.Quantity) })
	})
}

// Decode reads a cart object. The stored aggregates are ignored; the cart is
// rebuilt from the decoded items so aggregates can never arrive inconsistent.
func Decode(d *jx.Decoder) (Cart, error) {
	var items []Item
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "items":
			return d.Arr(func(d *jx.Decoder) error {
				it, err := DecodeItem(d)
				if err != nil {
					return err
				}
				items = append(items, it)
				return nil
			})
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return Empty(), errors.Wrap(err, "decode cart")
	}
	return New(items), nil
}

// DecodeItem reads a single cart line object.
func DecodeItem(d *jx.Decoder) (Item, error) {
	var it Item
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "productId":
			it.ProductID, err = d.Str()
		case "name":
			it.Name, err = d.Str()
		case "price":
			it.Price, err = decodePrice(d)
		case "image":
			it.Image, err = d.Str()
		case "quantity":
			it.Quantity, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return Item{}, errors.Wrap(err, "decode cart item")
	}
	return it, nil
}

func decodePrice(d *jx.Decoder) (decimal.Decimal, error) {
	n, err := d.Num()
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(string(n))
}
