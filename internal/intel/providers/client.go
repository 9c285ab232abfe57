package providers

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
	"time"

	"golang.org/x/time/rate"

	"companyintel/pkg/platform/circuit"
	"companyintel/pkg/platform/sentinel"
)

const maxBodyBytes = 32 << 20

// Client is the shared outbound runtime for one upstream registry. It paces
// requests with a token bucket, short-circuits while the registry is known to
// be down, and decodes JSON into an untyped tree so each adapter can read
// fields by priority list.
type Client struct {
	id         string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *circuit.Breaker
	headers    map[string]string
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimit sets the sustained request rate and burst. A non-positive
// rate disables pacing.
func WithRateLimit(perSecond float64, burst int) ClientOption {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *circuit.Breaker) ClientOption {
	return func(c *Client) {
		if b != nil {
			c.breaker = b
		}
	}
}

// WithHeader adds a header sent on every request.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithLogger sets the logger for breaker transitions.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the registry identified by id.
func NewClient(id string, opts ...ClientOption) *Client {
	c := &Client{
		id:         id,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(5), 5),
		breaker:    circuit.New(id),
		headers:    map[string]string{"Accept": "application/json"},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the registry identifier used in errors and metrics.
func (c *Client) ID() string {
	return c.id
}

// GetJSON fetches url and decodes the body into map[string]any / []any, with
// numbers kept as json.Number. Every error is a *ProviderError. Only the
// registry's own behaviour feeds the breaker: limiter waits and calls whose
// context ended are never recorded.
func (c *Client) GetJSON(ctx context.Context, url string) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, NewProviderError(ErrorTimeout, c.id, "rate limiter wait", err)
	}
	if !c.breaker.Allow() {
		return nil, NewProviderError(ErrorProviderOutage, c.id, "circuit open", sentinel.ErrUnavailable)
	}

	body, err := c.do(ctx, url)
	if ctx.Err() == nil {
		c.record(ctx, err)
	}
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, NewProviderError(ErrorBadData, c.id, "decode response", err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewProviderError(ErrorInternal, c.id, "build request", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, statusError(c.id, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	return raw, nil
}

func (c *Client) transportError(ctx context.Context, err error) *ProviderError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return NewProviderError(ErrorTimeout, c.id, "request timed out", err)
	case errors.As(err, &netErr) && netErr.Timeout():
		return NewProviderError(ErrorTimeout, c.id, "request timed out", err)
	default:
		return NewProviderError(ErrorProviderOutage, c.id, "request failed", err)
	}
}

func statusError(id string, status int) *ProviderError {
	msg := fmt.Sprintf("unexpected status %d", status)
	switch {
	case status == http.StatusNotFound:
		return NewProviderError(ErrorNotFound, id, msg, sentinel.ErrNotFound)
	case status == http.StatusTooManyRequests:
		return NewProviderError(ErrorRateLimited, id, msg, sentinel.ErrUnavailable)
	default:
		return NewProviderError(ErrorProviderOutage, id, msg, sentinel.ErrUnavailable)
	}
}

func (c *Client) record(ctx context.Context, err error) {
	if err != nil && countsAgainstBreaker(GetCategory(err)) {
		if _, change := c.breaker.RecordFailure(); change.Opened {
			c.logger.WarnContext(ctx, "provider circuit opened", "source", c.id, "error", err)
		}
		return
	}
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "provider circuit closed", "source", c.id)
	}
}
