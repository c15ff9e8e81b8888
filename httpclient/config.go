package httpclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/agrovia/agrovia-go/resilience"
)

const defaultTimeout = 30 * time.Second

// TokenProvider returns the access token for one attempt. The engine calls
// it on every attempt, never caching across attempts, so a token refreshed
// mid-retry-sequence is honored. An empty token omits the Authorization
// header; an error aborts the call immediately (misconfiguration is a
// programmer error, not a retry case).
type TokenProvider func(ctx context.Context) (string, error)

// Config configures the request engine. It is treated as immutable after
// New: all in-flight calls share it read-only, which is what makes the
// engine reentrant without locks.
type Config struct {
	// Name identifies the client in logs and metrics.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is the base URL prepended to all request paths.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds each individual attempt. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests.
	// Per-request headers override them on collision.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Token supplies the bearer token, re-read on every attempt.
	Token TokenProvider `yaml:"-" mapstructure:"-"`

	// Retry is the retry policy. Nil means DefaultRetryPolicy.
	Retry *RetryPolicy `yaml:"retry" mapstructure:"retry"`

	// Log configures request/response logging. Purely observational:
	// disabling it never changes retry or error behavior.
	Log LogConfig `yaml:"log" mapstructure:"log"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// CircuitBreaker configures circuit breaker behavior. Nil disables it.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"-" mapstructure:"-"`

	// RateLimiter configures client-side rate limiting. Nil disables it.
	RateLimiter *resilience.RateLimiterConfig `yaml:"-" mapstructure:"-"`

	// OnRetry is invoked before each backoff sleep with the 0-indexed
	// attempt that just failed, its error, and the computed delay.
	// Observational; must not block.
	OnRetry func(attempt int, err error, delay time.Duration) `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "http"
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Retry == nil {
		p := DefaultRetryPolicy()
		c.Retry = &p
	}
	c.Retry.ApplyDefaults()
	c.Log.ApplyDefaults()
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.BaseURL != "" {
		if _, err := url.Parse(c.BaseURL); err != nil {
			return fmt.Errorf("httpclient: invalid base_url: %w", err)
		}
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DefaultCircuitBreakerConfig returns a default circuit breaker config.
func DefaultCircuitBreakerConfig(name string) *resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig(name)
	return &cfg
}

// DefaultRateLimiterConfig returns a default rate limiter config.
func DefaultRateLimiterConfig(name string) *resilience.RateLimiterConfig {
	cfg := resilience.DefaultRateLimiterConfig(name)
	return &cfg
}
