// Package rest is the JSON/HTTP client for the clinic API. It handles tenant
// path scoping, bearer authentication, body codec, idempotency keys on
// writes, and per-call write timeouts. Retry and rate limiting live in the
// transport package underneath.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Tenant identifies one organization+clinic pair and the token that
// authenticates against it.
type Tenant struct {
	OrgID    string
	ClinicID string
	Token    string
}

// Options configures a Client.
type Options struct {
	// Transport handles the actual round trips; usually a *transport.Retry.
	Transport http.RoundTripper
	// WriteTimeout bounds each POST. Zero means no per-call timeout.
	WriteTimeout time.Duration
	Logger       zerolog.Logger
}

// Client is a tenant-scoped clinic API client.
type Client struct {
	baseURL      string
	tenant       Tenant
	httpClient   *http.Client
	writeTimeout time.Duration
	log          zerolog.Logger
}

func NewClient(baseURL string, tenant Tenant, opts Options) *Client {
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tenant:       tenant,
		httpClient:   &http.Client{Transport: opts.Transport},
		writeTimeout: opts.WriteTimeout,
		log:          opts.Logger,
	}
}

// Tenant returns the tenant this client is scoped to.
func (c *Client) Tenant() Tenant { return c.tenant }

// ClinicPath returns p scoped under the client's org and clinic.
func (c *Client) ClinicPath(p string) string {
	return fmt.Sprintf("org-id/%s/clinic-id/%s/%s", c.tenant.OrgID, c.tenant.ClinicID, p)
}

// OrgPath returns p scoped under the client's org only. The user roster
// lives at the org level, not the clinic level.
func (c *Client) OrgPath(p string) string {
	return fmt.Sprintf("org-id/%s/%s", c.tenant.OrgID, p)
}

// Error is a non-2xx response from the clinic API.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("clinic API responded %d: %s", e.StatusCode, e.Body)
}

// IsStatus reports whether err is an API Error with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// Get issues a GET and decodes the response body into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// Post issues a POST with a JSON body and decodes the response into out when
// out is non-nil. Each call carries a fresh Idempotency-Key header; the key
// is set once per logical request, so transport-level retries replay it
// unchanged and the destination can deduplicate.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	if c.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.writeTimeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", uuid.NewString())
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+c.tenant.Token)
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("method", req.Method).Str("url", req.URL.String()).Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Bounded read: error bodies are for logs, not processing.
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &Error{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
