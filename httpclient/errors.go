package httpclient

import (
	"errors"
	"fmt"
)

// ErrorKind classifies request engine errors. Every failed call surfaces
// exactly one kind, so calling code can branch deterministically.
type ErrorKind int

const (
	// KindNetwork indicates no response was received (refused, DNS, reset).
	KindNetwork ErrorKind = iota
	// KindTimeout indicates the per-attempt deadline elapsed on the final attempt.
	KindTimeout
	// KindCancelled indicates the caller aborted the call.
	KindCancelled
	// KindClient indicates a 4xx response outside the retryable set.
	KindClient
	// KindServer indicates a 5xx response after retries were exhausted.
	KindServer
	// KindValidation indicates a successful response whose body failed the
	// configured validator.
	KindValidation
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindCancelled:
		return "cancelled"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is the single terminal error type surfaced by the request engine.
type Error struct {
	// Kind classifies the error.
	Kind ErrorKind
	// StatusCode is the HTTP status code (0 when no response was received).
	StatusCode int
	// Message describes the error.
	Message string
	// Retryable reports whether the outcome was of a retryable class.
	// Informational only: by the time an Error exists, retries have either
	// already happened or were never eligible.
	Retryable bool
	// Body is the raw response body, if any.
	Body []byte
	// Issues carries field-level problems for validation errors.
	Issues []string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a network-kind error (no response received).
func NewNetworkError(err error) *Error {
	return &Error{
		Kind:      KindNetwork,
		Message:   errMessage(err, "connection failed"),
		Retryable: true,
		Err:       err,
	}
}

// NewTimeoutError creates a timeout-kind error (attempt deadline elapsed).
func NewTimeoutError(err error) *Error {
	return &Error{
		Kind:      KindTimeout,
		Message:   errMessage(err, "deadline exceeded"),
		Retryable: true,
		Err:       err,
	}
}

// NewCancelledError creates a cancelled-kind error (caller abort).
func NewCancelledError(err error) *Error {
	return &Error{
		Kind:    KindCancelled,
		Message: errMessage(err, "request cancelled"),
		Err:     err,
	}
}

// NewValidationError creates a validation-kind error from a validator failure.
// If the cause exposes Issues() []string, the individual problems are carried.
func NewValidationError(err error) *Error {
	e := &Error{
		Kind:    KindValidation,
		Message: errMessage(err, "response validation failed"),
		Err:     err,
	}
	var issuer interface{ Issues() []string }
	if errors.As(err, &issuer) {
		e.Issues = issuer.Issues()
	}
	return e
}

// NewStatusError classifies a non-2xx status into a client or server error.
// The Retryable flag records whether the status was in the default retryable
// class (408, 429, 5xx) even though retries are over by this point.
func NewStatusError(status int, body []byte) *Error {
	kind := KindClient
	if status >= 500 {
		kind = KindServer
	}
	return &Error{
		Kind:       kind,
		StatusCode: status,
		Message:    fmt.Sprintf("HTTP %d", status),
		Retryable:  status == 408 || status == 429 || status >= 500,
		Body:       body,
	}
}

func errMessage(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}

// IsNetwork checks if an error is a network error.
func IsNetwork(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNetwork
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTimeout
}

// IsCancelled checks if an error is a cancellation error.
func IsCancelled(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindCancelled
}

// IsClient checks if an error is a non-retryable 4xx error.
func IsClient(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindClient
}

// IsServer checks if an error is a 5xx error.
func IsServer(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindServer
}

// IsValidation checks if an error is a response validation error.
func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindValidation
}

// IsRetryable checks if an error was of a retryable class.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// StatusCode extracts the HTTP status from a classified error.
// Returns 0, false when no response was received.
func StatusCode(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && e.StatusCode > 0 {
		return e.StatusCode, true
	}
	return 0, false
}
