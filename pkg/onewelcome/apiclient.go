package onewelcome

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"golang.org/x/time/rate"

	"github.com/sellvation/onewelcome/internal/requestid"
)

// DefaultTimeout bounds a single request made with the default HTTP client.
const DefaultTimeout = 15 * time.Second

// ErrNoCredentials is returned by ExecuteWithAuthorization when called
// without credentials.
var ErrNoCredentials = errors.New("onewelcome: no credentials supplied")

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request describes a single API call. At most one of Body and Form is used;
// Body is encoded as JSON, Form as application/x-www-form-urlencoded.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   any
	Form   url.Values
}

// APIClient executes requests against the OneWelcome API and classifies the
// outcome. It performs no retries and is safe for concurrent use.
type APIClient struct {
	doer      Doer
	logger    *slog.Logger
	limiter   *rate.Limiter
	userAgent string
	headers   http.Header
}

// Option configures an APIClient.
type Option func(*APIClient)

// WithHTTPClient replaces the default pooled HTTP client.
func WithHTTPClient(d Doer) Option {
	return func(c *APIClient) {
		if d != nil {
			c.doer = d
		}
	}
}

// WithLogger sets the logger used for per-request debug records.
func WithLogger(l *slog.Logger) Option {
	return func(c *APIClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRateLimit caps outbound requests at rps per second with the given
// burst. A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *APIClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *APIClient) { c.userAgent = ua }
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(c *APIClient) { c.headers.Add(key, value) }
}

// NewAPIClient returns a client using a pooled HTTP client with
// DefaultTimeout unless WithHTTPClient is given.
func NewAPIClient(opts ...Option) *APIClient {
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = DefaultTimeout

	c := &APIClient{
		doer:      hc,
		logger:    slog.New(slog.DiscardHandler),
		userAgent: "onewelcome-go",
		headers:   http.Header{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute sends req without authorization.
func (c *APIClient) Execute(ctx context.Context, req Request) (*Payload, error) {
	return c.do(ctx, req, "")
}

// ExecuteWithAuthorization sends req with the bearer token from creds.
func (c *APIClient) ExecuteWithAuthorization(ctx context.Context, creds *Credentials, req Request) (*Payload, error) {
	if creds == nil {
		return nil, ErrNoCredentials
	}
	return c.do(ctx, req, creds.AccessToken())
}

func (c *APIClient) do(ctx context.Context, r Request, token string) (*Payload, error) {
	httpReq, err := c.newHTTPRequest(ctx, r)
	if err != nil {
		return nil, err
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	op := httpReq.Method + " " + httpReq.URL.Host + httpReq.URL.Path
	reqID := httpReq.Header.Get(requestid.Header)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}
	}

	start := time.Now()
	resp, err := c.doer.Do(httpReq)
	if err != nil {
		c.logger.DebugContext(ctx, "onewelcome_request",
			"req_id", reqID,
			"method", httpReq.Method,
			"host", httpReq.URL.Host,
			"path", httpReq.URL.Path,
			"error", err.Error(),
		)
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	c.logger.DebugContext(ctx, "onewelcome_request",
		"req_id", reqID,
		"method", httpReq.Method,
		"host", httpReq.URL.Host,
		"path", httpReq.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if !acceptedStatus(resp.StatusCode) {
		return nil, newAPIError(resp.StatusCode, body)
	}

	return decodePayload(body)
}

func acceptedStatus(code int) bool {
	switch code {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return true
	}
	return false
}

func (c *APIClient) newHTTPRequest(ctx context.Context, r Request) (*http.Request, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.Form != nil:
		body = strings.NewReader(r.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case r.Body != nil:
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, &SerializationError{Err: err}
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
	if err != nil {
		return nil, fmt.Errorf("onewelcome: failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestid.Header, requestid.New())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, values := range c.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	for key, values := range r.Header {
		req.Header[key] = append([]string(nil), values...)
	}

	return req, nil
}
