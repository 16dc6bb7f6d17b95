// Package apiclient is the single egress point to the company REST API.
//
// Every request reads the token store and attaches the bearer token when one is
// present. Responses are observed for 401s; the client never reaches into the
// session itself and instead invokes callbacks registered with OnAuthFailure.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/publicsuffix"

	apperrors "github.com/zeroco/company-console/internal/errors"
	"github.com/zeroco/company-console/internal/observability/metrics"
	"github.com/zeroco/company-console/internal/observability/statsd"
	"github.com/zeroco/company-console/internal/ports"
)

// LoginPath is the navigation location on which 401 responses are expected.
const LoginPath = "/login"

// maxErrorBody bounds how much of an error response is read for message extraction.
const maxErrorBody = 64 << 10

// LocationFunc reports the current navigation location (for example "/employees").
type LocationFunc func() string

// AuthFailureFunc is invoked when an authenticated call is rejected with 401
// outside the login view.
type AuthFailureFunc func(ctx context.Context, status int)

// Options configures a Client.
type Options struct {
	// BaseURL is the fixed API address, for example http://localhost:8080/api.
	BaseURL string
	Store   ports.TokenStore
	// Location defaults to a function that always reports "/".
	Location LocationFunc
	// Timeout bounds each request; zero leaves the platform default.
	Timeout time.Duration
	// Transport defaults to http.DefaultTransport.
	Transport http.RoundTripper
	// Cookies enables a cookie jar governed by the public suffix list.
	Cookies bool
	// Tracing wraps the transport with OpenTelemetry instrumentation.
	Tracing bool
	Metrics statsd.Sink
	Logger  *slog.Logger
}

// Client issues JSON requests against the API.
type Client struct {
	base     *url.URL
	http     *http.Client
	location LocationFunc
	metrics  statsd.Sink
	logger   *slog.Logger

	mu            sync.RWMutex
	onAuthFailure []AuthFailureFunc
}

// New builds a Client from opts.
func New(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	if opts.Store == nil {
		return nil, errors.New("apiclient: token store is required")
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	transport = &authTransport{base: transport, store: opts.Store}
	if opts.Tracing {
		transport = otelhttp.NewTransport(transport,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + RouteTemplate(strings.TrimPrefix(r.URL.Path, base.Path))
			}),
		)
	}

	hc := &http.Client{Transport: transport, Timeout: opts.Timeout}
	if opts.Cookies {
		jar, jarErr := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if jarErr != nil {
			return nil, fmt.Errorf("apiclient: cookie jar: %w", jarErr)
		}
		hc.Jar = jar
	}

	location := opts.Location
	if location == nil {
		location = func() string { return "/" }
	}

	return &Client{
		base:     base,
		http:     hc,
		location: location,
		metrics:  opts.Metrics,
		logger:   resolveLogger(opts.Logger),
	}, nil
}

func resolveLogger(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("apiclient: base URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("apiclient: parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("apiclient: base URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("apiclient: base URL host is required")
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery, u.Fragment = "", ""
	return u, nil
}

// BaseURL returns the configured API address.
func (c *Client) BaseURL() string { return c.base.String() }

// OnAuthFailure registers fn to be called on 401 responses outside the login view.
func (c *Client) OnAuthFailure(fn AuthFailureFunc) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAuthFailure = append(c.onAuthFailure, fn)
}

// RequestOption adjusts a single request.
type RequestOption func(*requestConfig)

type requestConfig struct {
	query           url.Values
	skipAuth        bool
	skipAuthFailure bool
}

// WithQuery sets the query string.
func WithQuery(q url.Values) RequestOption {
	return func(rc *requestConfig) { rc.query = q }
}

// WithoutAuth sends the request without a bearer token (login and registration).
func WithoutAuth() RequestOption {
	return func(rc *requestConfig) { rc.skipAuth = true }
}

// WithoutAuthFailureHandlers keeps a 401 on this request from reaching the
// OnAuthFailure callbacks. The error is still returned.
func WithoutAuthFailureHandlers() RequestOption {
	return func(rc *requestConfig) { rc.skipAuthFailure = true }
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, path, body, out, opts...)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPut, path, body, out, opts...)
}

// Delete issues a DELETE. out may be nil.
func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out, opts...)
}

// Do performs one request. Failures are *errors.AppError values carrying the HTTP
// status (zero when no response arrived) and the best available message.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var rc requestConfig
	for _, opt := range opts {
		opt(&rc)
	}

	route := RouteTemplate(path)
	start := time.Now()
	status, err := c.do(ctx, method, path, body, out, rc)
	metrics.EmitAPIRequest(c.metrics, metrics.APIRequestMetric{
		Method:   method,
		Route:    route,
		Status:   status,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		c.logger.WarnContext(ctx, "api request failed",
			"method", method,
			"route", route,
			"status", status,
			"error", err,
		)
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, rc requestConfig) (int, error) {
	req, err := c.newRequest(ctx, method, path, body, rc)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, transportError(ctx, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode == http.StatusUnauthorized && !rc.skipAuthFailure {
			c.observeUnauthorized(ctx, method, path)
		}
		return resp.StatusCode, responseError(resp.StatusCode, raw)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, transportError(ctx, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, apperrors.Wrap(err, apperrors.ErrCodeInternal, "")
	}
	return resp.StatusCode, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any, rc requestConfig) (*http.Request, error) {
	u := *c.base
	u.Path = c.base.Path + "/" + strings.TrimLeft(path, "/")
	if len(rc.query) > 0 {
		u.RawQuery = rc.query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if rc.skipAuth {
		req = req.WithContext(withoutAuth(req.Context()))
	}
	return req, nil
}

// observeUnauthorized flags a 401 for session invalidation unless the user is
// already on the login view, where 401 is the expected bad-credentials answer.
func (c *Client) observeUnauthorized(ctx context.Context, method, path string) {
	location := c.location()
	if location == LoginPath {
		return
	}
	c.logger.ErrorContext(ctx, "unauthorized request or token expired; session invalidation requested",
		"method", method,
		"route", RouteTemplate(path),
		"location", location,
	)

	c.mu.RLock()
	callbacks := make([]AuthFailureFunc, len(c.onAuthFailure))
	copy(callbacks, c.onAuthFailure)
	c.mu.RUnlock()

	for _, fn := range callbacks {
		fn(ctx, http.StatusUnauthorized)
	}
}

func transportError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, errTokenStore):
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "")
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "")
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.Wrap(err, apperrors.ErrCodeTimeout, "")
	}
	return apperrors.Wrap(err, apperrors.ErrCodeNetwork, "")
}
