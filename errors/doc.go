// Package errors models errors returned by the Agrovia API itself, as
// opposed to transport-level failures (see httpclient.Error). The API
// reports failures in a structured envelope:
//
//	{"code": "NOT_FOUND", "message": "farm not found", "details": {"id": "…"}}
//
// Decode converts such a body into an *APIError with a machine-readable
// code and a retryable hint.
package errors
