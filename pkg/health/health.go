// Package health provides liveness and readiness probe endpoints backed by
// periodic background checks. A check flips unhealthy only after failing
// consecutively a few times, so a single slow probe does not flap the
// gateway out of rotation.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// failureThreshold is the number of consecutive failures before a check is
// reported unhealthy.
const failureThreshold = 3

// CheckFunc probes one dependency. Return nil when healthy.
type CheckFunc func(ctx context.Context) error

type check struct {
	name    string
	timeout time.Duration
	fn      CheckFunc

	healthy atomic.Bool
	lastErr atomic.Pointer[error]
	fails   int // touched only by the runner goroutine
}

func (c *check) run(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, c.timeout)
	err := c.fn(cctx)
	cancel()
	c.lastErr.Store(&err)
	if err != nil {
		c.fails++
		if c.fails >= failureThreshold {
			c.healthy.Store(false)
		}
		return
	}
	c.fails = 0
	c.healthy.Store(true)
}

// Service runs the registered checks and serves /livez and /readyz.
type Service struct {
	ready atomic.Bool

	mu        sync.Mutex
	liveness  []*check
	readiness []*check
	cancel    context.CancelFunc
}

// New returns a Service that reports not-ready until SetReady(true).
func New() *Service {
	return &Service{}
}

func newCheck(name string, timeout time.Duration, fn CheckFunc) *check {
	c := &check{name: name, timeout: timeout, fn: fn}
	c.healthy.Store(true)
	return c
}

// AddLiveness registers a liveness check (is the process functional).
func (s *Service) AddLiveness(name string, timeout time.Duration, fn CheckFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.liveness = append(s.liveness, newCheck(name, timeout, fn))
}

// AddReadiness registers a readiness check (can the process serve traffic).
func (s *Service) AddReadiness(name string, timeout time.Duration, fn CheckFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readiness = append(s.readiness, newCheck(name, timeout, fn))
}

// SetReady flips the overall readiness gate. Shutdown flips it false before
// draining.
func (s *Service) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Start launches one goroutine per check, probing at interval until the
// context is cancelled or Stop is called.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	all := append(append([]*check{}, s.liveness...), s.readiness...)
	s.mu.Unlock()

	for _, c := range all {
		go func(c *check) {
			t := time.NewTicker(interval)
			defer t.Stop()
			c.run(ctx)
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					c.run(ctx)
				}
			}
		}(c)
	}
}

// Stop cancels the background probes.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// LiveEndpoint serves the liveness probe.
func (s *Service) LiveEndpoint(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	checks := append([]*check{}, s.liveness...)
	s.mu.Unlock()
	writeStatus(w, failures(checks))
}

// ReadyEndpoint serves the readiness probe. Not-ready always fails,
// regardless of individual checks.
func (s *Service) ReadyEndpoint(w http.ResponseWriter, _ *http.Request) {
	if !s.ready.Load() {
		writeStatus(w, map[string]string{"service": "not ready"})
		return
	}
	s.mu.Lock()
	checks := append([]*check{}, s.readiness...)
	s.mu.Unlock()
	writeStatus(w, failures(checks))
}

func failures(checks []*check) map[string]string {
	out := make(map[string]string)
	for _, c := range checks {
		if c.healthy.Load() {
			continue
		}
		msg := "check is unhealthy"
		if p := c.lastErr.Load(); p != nil && *p != nil {
			msg = (*p).Error()
		}
		out[c.name] = msg
	}
	return out
}

func writeStatus(w http.ResponseWriter, fails map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	body := struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks,omitempty"`
	}{Status: "ok"}
	code := http.StatusOK
	if len(fails) > 0 {
		body.Status = "unhealthy"
		body.Checks = fails
		code = http.StatusServiceUnavailable
	}
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
