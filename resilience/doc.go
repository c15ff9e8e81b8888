// Package resilience provides fault-tolerance primitives shared across the
// SDK: a generic retry executor with jittered exponential backoff, a
// circuit breaker, and a token-bucket rate limiter.
//
// The HTTP request engine carries its own deterministic retry policy
// (httpclient.RetryPolicy); this package's Retry is for everything else,
// such as polling bulk-job status:
//
//	status, err := resilience.Retry(ctx, cfg, func() (JobStatus, error) {
//	    return jobs.Status(ctx, id)
//	})
//
// The circuit breaker and rate limiter plug into httpclient.Config and are
// applied per attempt.
package resilience
