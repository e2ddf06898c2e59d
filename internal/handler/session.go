package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/jx"

	"github.com/haunguyen/shopfront/internal/domain/cart"
)

// login records the authenticated shopper. Remote caches are reset so the
// next cart read fetches this user's server-side cart.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var userID, token string
	d := jx.DecodeBytes(body)
	err = d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "userId":
			userID, err = d.Str()
		case "token":
			token, err = d.Str()
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil || userID == "" {
		writeError(w, r, &cart.ValidationError{Field: "userId", Reason: "required"})
		return
	}
	if err := h.session.Login(userID, token); err != nil {
		writeError(w, r, err)
		return
	}
	h.svc.ResetRemote()
	w.WriteHeader(http.StatusNoContent)
}

// logout clears the session and drops the remote caches. The guest cart in
// local storage is preserved: signing out returns the shopper to whatever
// guest cart they had before.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(); err != nil {
		writeError(w, r, err)
		return
	}
	h.svc.ResetRemote()
	w.WriteHeader(http.StatusNoContent)
}
