// Package shopapi is the HTTP client for the remote shop service: the
// canonical cart, wishlist, and profile of an authenticated shopper. The
// backend itself is a black box; this package owns the wire contract and
// the error taxonomy the rest of the core relies on.
package shopapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/haunguyen/shopfront/internal/identity"
)

// Client calls the remote shop service on behalf of the current shopper.
// The identity provider supplies the bearer credential per call, so a login
// or logout between calls takes effect immediately.
type Client struct {
	baseURL string
	http    *http.Client
	ids     identity.Provider
}

// NewClient builds a Client for the API at baseURL. Outgoing requests are
// traced via otelhttp.
func NewClient(baseURL string, ids identity.Provider, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		ids:     ids,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Ping checks that the API answers at all. Used by the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{Op: "ping", Err: err}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return &NetworkError{Op: "ping", Err: errors.Errorf("status %d", resp.StatusCode)}
	}
	return nil
}

// get performs a read, retrying once on a transient failure.
func (c *Client) get(ctx context.Context, op, path string) ([]byte, error) {
	body, err := c.do(ctx, op, http.MethodGet, path, nil)
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		body, err = c.do(ctx, op, http.MethodGet, path, nil)
	}
	return body, err
}

// do performs a single round-trip and maps the response to the package's
// error taxonomy. Mutation callers use it directly: no retries.
func (c *Client) do(ctx context.Context, op, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.ids.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrAuth
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, &NetworkError{Op: op, Err: errors.Errorf("status %d", resp.StatusCode)}
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, &APIError{Status: resp.StatusCode, Message: apiMessage(data)}
	}
	return data, nil
}

// apiMessage extracts the "message" field from an error body, falling back
// to the raw body.
func apiMessage(data []byte) string {
	msg := ""
	d := jx.DecodeBytes(data)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if key == "message" {
			s, err := d.Str()
			msg = s
			return err
		}
		return d.Skip()
	})
	if err != nil || msg == "" {
		return string(data)
	}
	return msg
}
