package shopapi

import (
	"fmt"

	"github.com/go-faster/errors"
)

// ErrAuth is returned when the server rejects the shopper's credential
// (HTTP 401). Callers treat it as a forced fallback to guest mode and
// prompt the shopper to sign in again.
var ErrAuth = errors.New("shop api: authentication rejected")

// NetworkError is a transient transport-level failure: connection refused,
// timeout, or a 5xx from the server. Reads are retried once; mutations are
// never auto-retried to avoid duplicate side effects.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("shop api: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a definitive rejection from the server (4xx other than 401).
// It is not retryable.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shop api: status %d: %s", e.Status, e.Message)
}
