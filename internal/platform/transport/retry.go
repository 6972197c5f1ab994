// Package transport wraps outbound HTTP with bounded retry and client-side
// rate limiting.
package transport

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// MaxAttempts bounds how many times one logical request hits the wire.
	MaxAttempts = 5
	// RetryDelay is the fixed pause between attempts.
	RetryDelay = time.Second
)

// Retry is an http.RoundTripper that absorbs transport-level failures
// (connection refused, DNS, timeout before any response) by retrying up to
// MaxAttempts with a fixed delay. Any received HTTP response — success or
// application error — is returned immediately; request semantics are never
// retried here.
type Retry struct {
	Base    http.RoundTripper // nil means http.DefaultTransport
	Limiter *rate.Limiter     // nil disables rate limiting
	Logger  zerolog.Logger

	// Attempts and Delay override MaxAttempts/RetryDelay when non-zero.
	Attempts int
	Delay    time.Duration
}

func (r *Retry) base() http.RoundTripper {
	if r.Base != nil {
		return r.Base
	}
	return http.DefaultTransport
}

func (r *Retry) RoundTrip(req *http.Request) (*http.Response, error) {
	attempts := r.Attempts
	if attempts <= 0 {
		attempts = MaxAttempts
	}
	delay := r.Delay
	if delay <= 0 {
		delay = RetryDelay
	}

	if req.Body != nil && req.GetBody == nil && attempts > 1 {
		// The body cannot be replayed, so there is nothing to retry with.
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(delay):
			case <-req.Context().Done():
				return nil, req.Context().Err()
			}
			req = req.Clone(req.Context())
			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, fmt.Errorf("transport: rewind request body: %w", err)
				}
				req.Body = body
			}
		}

		if r.Limiter != nil {
			if err := r.Limiter.Wait(req.Context()); err != nil {
				return nil, err
			}
		}

		resp, err := r.base().RoundTrip(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if attempt < attempts {
			r.Logger.Warn().
				Err(err).
				Str("method", req.Method).
				Str("url", req.URL.String()).
				Int("attempt", attempt).
				Int("max_attempts", attempts).
				Msg("connection to API server failed, retrying")
		}
	}

	return nil, fmt.Errorf("transport: %d attempts exhausted for %s %s: %w",
		attempts, req.Method, req.URL, lastErr)
}
