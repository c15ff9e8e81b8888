package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agrovia/agrovia-go/resilience"
)

// Client is the request engine. It is safe for concurrent use: independent
// calls share only the immutable Config, each carrying its own attempt
// counter, deadline, and cancellation handle. Attempts within one call are
// strictly sequential.
type Client struct {
	httpClient *http.Client
	config     Config
	cb         *resilience.CircuitBreaker
	rl         *resilience.RateLimiter
	log        engineLogger
}

// New creates a new request engine with the given configuration.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	c := &Client{
		// No http.Client.Timeout here: each attempt is bounded by its own
		// context deadline so that timeouts and caller cancellation can be
		// told apart.
		httpClient: &http.Client{Transport: transport},
		config:     cfg,
		log:        newEngineLogger(cfg),
	}

	if cfg.CircuitBreaker != nil {
		c.cb = resilience.NewCircuitBreaker(*cfg.CircuitBreaker)
	}
	if cfg.RateLimiter != nil {
		c.rl = resilience.NewRateLimiter(*cfg.RateLimiter)
	}

	return c, nil
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (c *Client) Unwrap() *http.Client {
	return c.httpClient
}

// CloseIdleConnections closes idle connections held by the transport.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// Do executes one logical call across up to MaxRetries+1 physical attempts.
// The URL and body are assembled once; headers and the auth token are
// rebuilt on every attempt. On a non-retryable failure or once retries are
// exhausted, the last outcome is returned as a classified *Error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	target, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}
	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	policy := *c.config.Retry

	var out attemptOutcome
	for attempt := 0; ; attempt++ {
		out, err = c.attempt(ctx, req, target, body, contentType, requestID, attempt)
		if err != nil {
			// Token provider or request construction failed: a programmer
			// error, surfaced as-is without retry.
			return nil, err
		}

		switch out.kind {
		case outcomeSuccess:
			if req.Validator != nil {
				if verr := req.Validator.Validate(out.body); verr != nil {
					cerr := NewValidationError(verr)
					c.log.failure(requestID, attempt, cerr)
					return nil, cerr
				}
			}
			c.log.response(requestID, attempt, out.status, out.body)
			return &Response{StatusCode: out.status, Headers: out.headers, Body: out.body}, nil
		case outcomeCancelled:
			return nil, out.terminalError()
		}

		if !policy.shouldRetry(attempt, out) {
			terr := out.terminalError()
			c.log.failure(requestID, attempt, terr)
			return nil, terr
		}

		delay := policy.DelayFor(attempt)
		if c.config.OnRetry != nil {
			c.config.OnRetry(attempt, out.terminalError(), delay)
		}
		c.log.retry(requestID, attempt, delay, out.terminalError())

		// The backoff sleep is itself interruptible by cancellation.
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, abortError(ctx.Err())
		case <-timer.C:
		}
	}
}

// attempt issues one physical attempt under its own deadline and classifies
// the outcome. The returned error is non-nil only for pre-flight programmer
// errors (token provider failure, malformed request), which bypass retry.
func (c *Client) attempt(ctx context.Context, req Request, target string, body []byte, contentType, requestID string, attempt int) (attemptOutcome, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.config.Timeout
	}
	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	headers, err := c.buildHeaders(actx, req.Headers)
	if err != nil {
		return attemptOutcome{}, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(actx, req.Method, target, reader)
	if err != nil {
		return attemptOutcome{}, fmt.Errorf("httpclient: create request: %w", err)
	}
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil && contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("X-Request-ID", requestID)

	c.log.request(requestID, attempt, req.Method, target, body)

	if c.rl != nil {
		if err := c.rl.Wait(actx); err != nil {
			return classifyAbort(ctx, actx, err), nil
		}
	}

	if c.cb != nil {
		var out attemptOutcome
		cbErr := c.cb.Execute(func() error {
			out = c.send(ctx, actx, httpReq)
			if out.kind == outcomeSuccess {
				return nil
			}
			return out.terminalError()
		})
		if errors.Is(cbErr, resilience.ErrCircuitOpen) {
			return networkFailureOutcome(cbErr), nil
		}
		return out, nil
	}

	return c.send(ctx, actx, httpReq), nil
}

// send performs the network exchange and reads the full body.
func (c *Client) send(ctx, actx context.Context, httpReq *http.Request) attemptOutcome {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return classifyAbort(ctx, actx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyAbort(ctx, actx, fmt.Errorf("read response body: %w", err))
	}

	headers := flattenHeaders(resp.Header)
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return successOutcome(resp.StatusCode, headers, body)
	}
	return httpFailureOutcome(resp.StatusCode, headers, body)
}

// classifyAbort separates the two abort sources racing over an attempt:
// the caller's cancellation signal wins over the attempt deadline, and
// anything else is a transport-level network failure.
func classifyAbort(ctx, actx context.Context, err error) attemptOutcome {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return cancelledOutcome(context.Canceled)
	case errors.Is(actx.Err(), context.DeadlineExceeded):
		return timeoutFailureOutcome(err)
	default:
		return networkFailureOutcome(err)
	}
}

// abortError classifies a terminated parent context: user cancellation
// surfaces as Cancelled, a caller-supplied overall deadline as Timeout.
func abortError(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(err)
	}
	return NewCancelledError(err)
}

// buildURL resolves base + path + ordered query parameters.
func (c *Client) buildURL(req Request) (string, error) {
	target := req.Path
	if c.config.BaseURL != "" && !strings.HasPrefix(req.Path, "http://") && !strings.HasPrefix(req.Path, "https://") {
		target = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}
	if _, err := url.Parse(target); err != nil {
		return "", fmt.Errorf("httpclient: invalid request URL %q: %w", target, err)
	}
	if q := encodeQuery(req.Query); q != "" {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + q
	}
	return target, nil
}

// encodeBody serializes a body value once per logical call.
func encodeBody(body any) ([]byte, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case json.RawMessage:
		return v, "application/json", nil
	case []byte:
		return v, "", nil
	case string:
		return []byte(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("httpclient: encode body: %w", err)
		}
		return data, "application/json", nil
	}
}

// flattenHeaders converts multi-value headers to single-value.
func flattenHeaders(h http.Header) map[string]string {
	result := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			result[k] = v[0]
		}
	}
	return result
}
