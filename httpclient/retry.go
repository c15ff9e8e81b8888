package httpclient

import "time"

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = time.Second
)

// defaultRetryableStatuses are the codes treated as transient out of the box.
func defaultRetryableStatuses() []int {
	return []int{408, 429, 500, 502, 503, 504}
}

// RetryPolicy decides retry eligibility and backoff timing for the request
// engine. It is owned by Config, shared read-only by all calls, and never
// mutated per call.
//
// Backoff is deterministic: DelayFor(i) = BaseDelay * 2^i, with no jitter
// and no cap. For jittered, capped backoff outside the HTTP engine see
// resilience.Retry.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the initial attempt,
	// so a request is attempted at most MaxRetries+1 times. Defaults to 3.
	MaxRetries int
	// BaseDelay is the delay before the first retry. Defaults to 1s.
	BaseDelay time.Duration
	// RetryableStatuses are the HTTP status codes eligible for retry.
	// Defaults to 408, 429, 500, 502, 503, 504.
	RetryableStatuses []int
}

// DefaultRetryPolicy returns the standard policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:        defaultMaxRetries,
		BaseDelay:         defaultBaseDelay,
		RetryableStatuses: defaultRetryableStatuses(),
	}
}

// ApplyDefaults fills zero-value fields. A negative MaxRetries is treated
// as zero (single attempt); an explicitly empty-but-non-nil status slice is
// honored as "no status is retryable".
func (p *RetryPolicy) ApplyDefaults() {
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = defaultBaseDelay
	}
	if p.RetryableStatuses == nil {
		p.RetryableStatuses = defaultRetryableStatuses()
	}
}

// DelayFor returns the backoff before retry number attempt+1.
// Pure and deterministic: BaseDelay * 2^attempt.
func (p RetryPolicy) DelayFor(attempt int) time.Duration {
	return p.BaseDelay << uint(attempt)
}

// retryableStatus reports whether a status code is in the retryable set.
func (p RetryPolicy) retryableStatus(status int) bool {
	for _, s := range p.RetryableStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// shouldRetry decides whether the given attempt (0-indexed) may be followed
// by another. Network failures and timeouts are always transient; HTTP
// failures only when the status is in the retryable set. Cancellation is a
// terminal, user-driven signal and is never retried.
func (p RetryPolicy) shouldRetry(attempt int, out attemptOutcome) bool {
	if attempt >= p.MaxRetries {
		return false
	}
	switch out.kind {
	case outcomeNetworkFailure, outcomeTimeoutFailure:
		return true
	case outcomeHTTPFailure:
		return p.retryableStatus(out.status)
	default:
		return false
	}
}
