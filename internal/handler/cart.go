package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/jx"

	"github.com/haunguyen/shopfront/internal/domain/cart"
)

// getCart returns the authoritative cart for the current shopper. The badge
// count in the view is always totalProduct of this response.
func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.ResolveCart(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCart(w, c)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	item, err := cart.DecodeItem(jx.DecodeBytes(body))
	if err != nil {
		writeError(w, r, &cart.ValidationError{Field: "body", Reason: "malformed item"})
		return
	}
	c, err := h.svc.AddToCart(r.Context(), item)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCart(w, c)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	quantity, err := decodeQuantity(body)
	if err != nil {
		writeError(w, r, &cart.ValidationError{Field: "quantity", Reason: "malformed"})
		return
	}
	c, err := h.svc.UpdateQuantity(r.Context(), productID, quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCart(w, c)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.RemoveFromCart(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCart(w, c)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ClearCart(); err != nil {
		writeError(w, r, err)
		return
	}
	writeCart(w, cart.Empty())
}

func decodeQuantity(body []byte) (int, error) {
	quantity := 0
	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "quantity" {
			return d.Skip()
		}
		n, err := d.Int()
		quantity = n
		return err
	})
	if err != nil {
		return 0, err
	}
	if quantity == 0 {
		return 0, strconv.ErrSyntax
	}
	return quantity, nil
}
