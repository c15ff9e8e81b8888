package agrovia

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/agrovia/agrovia-go/auth"
	apierrors "github.com/agrovia/agrovia-go/errors"
	"github.com/agrovia/agrovia-go/httpclient"
	"github.com/agrovia/agrovia-go/observability"
)

// Config carries everything needed to construct a Client. Only BaseURL
// is mandatory; either APIToken or Token must be set for authenticated
// endpoints.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.agrovia.io/v1".
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// APIToken is a static bearer token. Ignored when Token is set.
	APIToken string `yaml:"api_token" mapstructure:"api_token"`

	// Token supplies the bearer token before every attempt. Use
	// auth.Refreshing for tokens that expire.
	Token httpclient.TokenProvider `yaml:"-" mapstructure:"-"`

	// Timeout bounds each individual attempt. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Retry overrides the default retry policy (3 retries, 1s base
	// delay, doubling).
	Retry *httpclient.RetryPolicy `yaml:"retry" mapstructure:"retry"`

	// Log configures request/response logging on the underlying engine.
	Log httpclient.LogConfig `yaml:"log" mapstructure:"log"`

	// Headers are sent with every request in addition to the standard
	// Accept and Authorization headers.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Metrics, when non-nil, receives per-call and per-retry
	// measurements.
	Metrics *observability.ClientMetrics `yaml:"-" mapstructure:"-"`

	// HTTP exposes the remaining engine knobs (TLS, circuit breaker,
	// rate limiter) for callers that need them.
	HTTP *httpclient.Config `yaml:"-" mapstructure:"-"`
}

// Client is the entry point to the Agrovia API. Construct it with New
// and share it; it is safe for concurrent use.
type Client struct {
	http    *httpclient.Client
	metrics *observability.ClientMetrics

	Farmers    *FarmersService
	Farms      *FarmsService
	Crops      *CropsService
	Activities *ActivitiesService
	Jobs       *JobsService
	Reports    *ReportsService
}

// New validates cfg and builds a Client with all resource services
// attached.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("agrovia: base URL is required")
	}

	token := cfg.Token
	if token == nil && cfg.APIToken != "" {
		token = auth.Static(cfg.APIToken)
	}

	hcfg := httpclient.Config{Name: "agrovia"}
	if cfg.HTTP != nil {
		hcfg = *cfg.HTTP
		if hcfg.Name == "" {
			hcfg.Name = "agrovia"
		}
	}
	hcfg.BaseURL = cfg.BaseURL
	if cfg.Timeout > 0 {
		hcfg.Timeout = cfg.Timeout
	}
	if token != nil {
		hcfg.Token = token
	}
	if cfg.Retry != nil {
		hcfg.Retry = cfg.Retry
	}
	if cfg.Log.Enabled {
		hcfg.Log = cfg.Log
	}
	if hcfg.Headers == nil {
		hcfg.Headers = map[string]string{}
	}
	if _, ok := hcfg.Headers["Accept"]; !ok {
		hcfg.Headers["Accept"] = "application/json"
	}
	for k, v := range cfg.Headers {
		hcfg.Headers[k] = v
	}
	if cfg.Metrics != nil && hcfg.OnRetry == nil {
		m := cfg.Metrics
		hcfg.OnRetry = func(attempt int, err error, delay time.Duration) {
			m.RecordRetry(context.Background(), "http")
		}
	}

	hc, err := httpclient.New(hcfg)
	if err != nil {
		return nil, err
	}

	c := &Client{http: hc, metrics: cfg.Metrics}
	c.Farmers = &FarmersService{client: c}
	c.Farms = &FarmsService{client: c}
	c.Crops = &CropsService{client: c}
	c.Activities = &ActivitiesService{client: c}
	c.Jobs = &JobsService{client: c}
	c.Reports = &ReportsService{client: c}
	return c, nil
}

// Ping checks connectivity to the API without touching any resource.
func (c *Client) Ping(ctx context.Context) error {
	ctx, done := c.observe(ctx, "ping")
	resp, err := c.http.Do(ctx, httpclient.Request{Method: "GET", Path: "/health"})
	if err == nil && !resp.IsSuccess() {
		err = fmt.Errorf("agrovia: health check returned status %d", resp.StatusCode)
	}
	done(err)
	return err
}

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// observe starts a span for the operation and returns a completion
// callback that records the span outcome and call metrics.
func (c *Client) observe(ctx context.Context, operation string) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := observability.StartSpan(ctx, "agrovia."+operation)
	return ctx, func(err error) {
		status := "ok"
		if err != nil {
			status = "error"
			observability.RecordError(ctx, err)
		}
		span.End()
		c.metrics.RecordCall(ctx, operation, status, time.Since(start))
	}
}

// apiError rewrites engine failures that carry a server error envelope
// into *apierrors.APIError so callers can branch on stable error codes.
// Transport-level failures pass through unchanged.
func apiError(err error) error {
	if err == nil {
		return nil
	}
	var herr *httpclient.Error
	if stderrors.As(err, &herr) && herr.StatusCode > 0 &&
		(herr.Kind == httpclient.KindClient || herr.Kind == httpclient.KindServer) {
		return apierrors.Decode(herr.StatusCode, herr.Body, herr)
	}
	return err
}
