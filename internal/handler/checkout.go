package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/haunguyen/shopfront/internal/checkout"
	"github.com/haunguyen/shopfront/internal/domain/cart"
	"github.com/haunguyen/shopfront/internal/domain/product"
)

// buyNow builds the direct-checkout order draft and returns it to the view,
// which hands it to the external payment flow. The cart is never touched.
func (h *Handler) buyNow(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, quantity, err := decodeBuyNow(body)
	if err != nil {
		writeError(w, r, &cart.ValidationError{Field: "body", Reason: "malformed buy-now request"})
		return
	}
	draft, err := h.svc.BuyNow(r.Context(), p, quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var e jx.Encoder
	encodeDraft(&e, draft)
	writeJSON(w, http.StatusOK, &e)
}

func decodeBuyNow(body []byte) (product.Product, int, error) {
	var p product.Product
	quantity := 1
	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "product":
			return decodeProduct(d, &p)
		case "quantity":
			n, err := d.Int()
			quantity = n
			return err
		default:
			return d.Skip()
		}
	})
	return p, quantity, err
}

func decodeProduct(d *jx.Decoder, p *product.Product) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			p.ID, err = d.Str()
		case "name":
			p.Name, err = d.Str()
		case "price":
			p.Price, err = decodeDecimal(d)
		case "priceOld":
			p.OldPrice, err = decodeDecimal(d)
		case "category":
			p.Category, err = d.Str()
		case "images":
			err = d.Arr(func(d *jx.Decoder) error {
				s, err := d.Str()
				if err != nil {
					return err
				}
				p.Images = append(p.Images, s)
				return nil
			})
		case "countInStock":
			p.InStock, err = d.Int()
		case "rating":
			p.Rating, err = d.Float64()
		default:
			err = d.Skip()
		}
		return err
	})
}

func encodeDraft(e *jx.Encoder, draft checkout.Draft) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(draft.ID) })
		e.Field("orderItems", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, it := range draft.Items {
					cart.EncodeItem(e, it)
				}
			})
		})
		e.Field("shippingAddress", func(e *jx.Encoder) {
			a := draft.ShippingAddress
			e.Obj(func(e *jx.Encoder) {
				e.Field("recipient", func(e *jx.Encoder) { e.Str(a.Recipient) })
				e.Field("phone", func(e *jx.Encoder) { e.Str(a.Phone) })
				e.Field("street", func(e *jx.Encoder) { e.Str(a.Street) })
				e.Field("city", func(e *jx.Encoder) { e.Str(a.City) })
			})
		})
		e.Field("subTotal", func(e *jx.Encoder) { e.Num(jx.Num(draft.SubTotal.String())) })
		e.Field("totalProduct", func(e *jx.Encoder) { e.Int(draft.TotalProduct) })
		e.Field("userId", func(e *jx.Encoder) { e.Str(draft.UserID) })
		e.Field("slug", func(e *jx.Encoder) { e.Str(draft.Category) })
	})
}

func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	n, err := d.Num()
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(string(n))
}
