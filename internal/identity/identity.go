// Package identity exposes the authentication state the cart core reads to
// pick between the guest and the server-side cart. Token issuance and
// validation belong to the upstream auth service; this package only stores
// the opaque credential and answers "who is the shopper right now".
package identity

// Provider is the read-only view the cart core depends on.
type Provider interface {
	// IsAuthenticated reports whether a shopper is signed in.
	IsAuthenticated() bool
	// CurrentUserID returns the opaque user identifier, or ok=false for a
	// guest.
	CurrentUserID() (id string, ok bool)
	// Token returns the opaque bearer credential for remote calls. Empty
	// for a guest.
	Token() string
}
