// Package handler exposes the cart core to the view layer over localhost
// HTTP. Handlers stay thin: decode, delegate to the shopper service, map
// errors to the response envelope.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/haunguyen/shopfront/internal/domain/cart"
	"github.com/haunguyen/shopfront/internal/identity"
	"github.com/haunguyen/shopfront/internal/shopapi"
	"github.com/haunguyen/shopfront/internal/shopper"
)

// Handler serves the gateway API for one shopper session.
type Handler struct {
	svc     *shopper.Service
	session *identity.Session
}

// New constructs a Handler over the shopper service and its session.
func New(svc *shopper.Service, session *identity.Session) *Handler {
	return &Handler{svc: svc, session: session}
}

// Routes mounts all gateway endpoints on a chi router.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/cart", h.getCart)
		r.Delete("/cart", h.clearCart)
		r.Post("/cart/items", h.addCartItem)
		r.Patch("/cart/items/{productID}", h.updateCartItem)
		r.Delete("/cart/items/{productID}", h.removeCartItem)

		r.Get("/wishlist", h.getWishlist)
		r.Put("/wishlist/{productID}", h.addWishlist)
		r.Delete("/wishlist/{productID}", h.removeWishlist)

		r.Post("/checkout/buy-now", h.buyNow)

		r.Post("/session", h.login)
		r.Delete("/session", h.logout)
	})
}

// writeJSON writes a jx-encoded body with the given status.
func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError maps domain errors to the response envelope. Transient
// failures are flagged so the view can offer a retry.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	transient := false

	var (
		valErr *cart.ValidationError
		apiErr *shopapi.APIError
		netErr *shopapi.NetworkError
	)
	switch {
	case errors.As(err, &valErr):
		status = http.StatusBadRequest
	case errors.Is(err, shopper.ErrAuthRequired), errors.Is(err, shopapi.ErrAuth):
		status = http.StatusUnauthorized
	case errors.Is(err, cart.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &apiErr):
		status = apiErr.Status
	case errors.As(err, &netErr):
		status = http.StatusBadGateway
		transient = true
	}

	if status >= http.StatusInternalServerError {
		zctx.From(r.Context()).Error("request failed", zap.Error(err))
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("message", func(e *jx.Encoder) { e.Str(err.Error()) })
		if transient {
			e.Field("transient", func(e *jx.Encoder) { e.Bool(true) })
		}
	})
	writeJSON(w, status, &e)
}

// writeCart writes a cart response.
func writeCart(w http.ResponseWriter, c cart.Cart) {
	var e jx.Encoder
	cart.Encode(&e, c)
	writeJSON(w, http.StatusOK, &e)
}
