package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/jx"
)

func (h *Handler) getWishlist(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.ResolveWishlist(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("products", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, id := range snap.ProductIDs() {
					e.Str(id)
				}
			})
		})
		e.Field("count", func(e *jx.Encoder) { e.Int(snap.Len()) })
	})
	writeJSON(w, http.StatusOK, &e)
}

func (h *Handler) addWishlist(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.AddToWishlist(r.Context(), chi.URLParam(r, "productID")); err != nil {
		writeError(w, r, err)
		return
	}
	h.getWishlist(w, r)
}

func (h *Handler) removeWishlist(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveFromWishlist(r.Context(), chi.URLParam(r, "productID")); err != nil {
		writeError(w, r, err)
		return
	}
	h.getWishlist(w, r)
}
