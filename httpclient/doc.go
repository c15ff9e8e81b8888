// Package httpclient implements the shared request engine underneath every
// Agrovia resource service. It owns authentication-header injection,
// per-attempt timeouts, cooperative cancellation, retry with deterministic
// exponential backoff, and classification of every failure into a fixed
// error taxonomy, so that individual resource methods stay thin.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.agrovia.io/v1",
//	    Timeout: 30 * time.Second,
//	    Token:   auth.Static("my-token"),
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/farms/123",
//	})
//
// # Failure semantics
//
// Every non-success path yields exactly one *Error whose Kind is one of
// Network, Timeout, Cancelled, Client, Server, or Validation. Retryable
// outcomes (network errors, timeouts, and statuses in the retry policy's
// set) are resolved by backoff invisibly to the caller; everything else is
// terminal on first occurrence. Cancellation via the caller's context is
// always terminal, including while sleeping between attempts.
package httpclient
