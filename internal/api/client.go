// Package api is the single chokepoint for all calls to the GrandCall Pro
// backend. It attaches the bearer token when one is stored, detects 401
// responses, clears the durable session, and broadcasts the invalidation
// signal. It never navigates; reacting to a dead session is the caller's job.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	cperrors "github.com/grandcallpro/callctl/internal/errors"
	"github.com/grandcallpro/callctl/internal/log"
)

// Credentials is the durable session surface the client depends on.
// Token returns the stored bearer token or "" when logged out; Clear
// removes the whole session record.
type Credentials interface {
	Token() string
	Clear() error
}

// noCredentials is used before any store is attached
type noCredentials struct{}

func (noCredentials) Token() string { return "" }
func (noCredentials) Clear() error  { return nil }

const defaultTimeout = 10 * time.Second

// Client is the HTTP client for the /v1 API
type Client struct {
	baseURL  string
	http     *http.Client
	creds    Credentials
	notifier *InvalidationNotifier
	logger   *log.Logger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the fixed request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithCredentials attaches the durable session store
func WithCredentials(creds Credentials) Option {
	return func(c *Client) { c.creds = creds }
}

// WithLogger sets the client logger
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithHTTPClient replaces the underlying http.Client (used in tests)
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates an API client for the given base URL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: defaultTimeout},
		creds:    noCredentials{},
		notifier: NewInvalidationNotifier(),
		logger:   log.GetDefault(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Notifier returns the invalidation notifier for this client
func (c *Client) Notifier() *InvalidationNotifier {
	return c.notifier
}

// BaseURL returns the configured base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs an API call. body (if non-nil) is JSON-encoded; out (if
// non-nil) receives the decoded 2xx response body. Non-2xx responses are
// returned as *Error.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return cperrors.Wrap(cperrors.ErrCodeAPITimeout, "request timed out", err).
				WithSuggestion("Check connectivity to " + c.baseURL)
		}
		return cperrors.Wrap(cperrors.ErrCodeAPIRequestFailed, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidateSession(req)
	}

	return c.parseResponse(resp, out)
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST request
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put performs a PUT request
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// PathWithQuery joins a path with URL query values
func PathWithQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// invalidateSession clears the durable session and broadcasts the signal.
// Runs on every 401; clearing an already-empty store is harmless and the
// broadcast is a no-op without subscribers. A 401 for a token the store no
// longer holds is ignored: the session changed while that request was in
// flight, and its rejection must not tear down the replacement.
func (c *Client) invalidateSession(req *http.Request) {
	if sent := bearerToken(req); sent != "" && sent != c.creds.Token() {
		c.logger.Debug("ignoring unauthorized response for superseded token",
			"method", req.Method, "path", req.URL.Path)
		return
	}

	c.logger.Warn("unauthorized response, clearing session",
		"method", req.Method, "path", req.URL.Path)
	if err := c.creds.Clear(); err != nil {
		c.logger.WithError(err).Error("failed to clear session store")
	}
	c.notifier.Broadcast()
}

// bearerToken extracts the token a request was sent with, or ""
func bearerToken(req *http.Request) string {
	const prefix = "Bearer "
	if h := req.Header.Get("Authorization"); strings.HasPrefix(h, prefix) {
		return strings.TrimPrefix(h, prefix)
	}
	return ""
}

// parseResponse decodes the response into out or builds an *Error
func (c *Client) parseResponse(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)

		apiErr := &Error{Status: resp.StatusCode}
		var envelope errorResponse
		if err := json.Unmarshal(raw, &envelope); err == nil {
			apiErr.Code = envelope.Code
			apiErr.Fields = envelope.Fields
			switch {
			case envelope.Message != "":
				apiErr.Message = envelope.Message
			case envelope.Error != "":
				apiErr.Message = envelope.Error
			}
		}
		if apiErr.Message == "" && len(raw) > 0 {
			apiErr.Message = string(raw)
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
