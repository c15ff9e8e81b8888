package errors

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError is a structured error reported by the Agrovia API.
type APIError struct {
	// Code is the API's machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// HTTPStatus is the status the error arrived with (0 when unknown).
	HTTPStatus int `json:"-"`
	// Retryable indicates whether the operation may succeed if repeated.
	Retryable bool `json:"-"`
	// Cause is the transport-level error the envelope was decoded from.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *APIError) Error() string {
	if e.HTTPStatus > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Code, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying transport error.
func (e *APIError) Unwrap() error { return e.Cause }

// New creates an APIError with automatic retryable detection.
func New(code ErrorCode, message string) *APIError {
	return &APIError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// envelope is the wire shape of API error bodies.
type envelope struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Decode parses an API error envelope out of a response body. When the
// body is not a well-formed envelope, a generic APIError is synthesized
// from the status so callers always get one error shape.
func Decode(status int, body []byte, cause error) *APIError {
	var env envelope
	if len(body) > 0 {
		if err := json.Unmarshal(body, &env); err == nil && env.Code != "" {
			return &APIError{
				Code:       env.Code,
				Message:    env.Message,
				Details:    env.Details,
				HTTPStatus: status,
				Retryable:  IsRetryableCode(env.Code),
				Cause:      cause,
			}
		}
	}
	return &APIError{
		Code:       codeForStatus(status),
		Message:    fmt.Sprintf("HTTP %d", status),
		HTTPStatus: status,
		Retryable:  IsRetryableCode(codeForStatus(status)),
		Cause:      cause,
	}
}

// codeForStatus maps a bare HTTP status onto the closest API code.
func codeForStatus(status int) ErrorCode {
	switch status {
	case 401:
		return ErrCodeUnauthorized
	case 403:
		return ErrCodeForbidden
	case 404:
		return ErrCodeNotFound
	case 409:
		return ErrCodeConflict
	case 429:
		return ErrCodeRateLimited
	case 503:
		return ErrCodeServiceUnavailable
	case 504:
		return ErrCodeTimeout
	default:
		if status >= 400 && status < 500 {
			return ErrCodeInvalidInput
		}
		return ErrCodeInternal
	}
}

// IsCode checks whether err is an APIError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var e *APIError
	return errors.As(err, &e) && e.Code == code
}

// IsNotFound checks whether err is a NOT_FOUND API error.
func IsNotFound(err error) bool { return IsCode(err, ErrCodeNotFound) }

// IsConflict checks whether err is a CONFLICT API error.
func IsConflict(err error) bool { return IsCode(err, ErrCodeConflict) }

// IsUnauthorized checks whether err is an UNAUTHORIZED API error.
func IsUnauthorized(err error) bool { return IsCode(err, ErrCodeUnauthorized) }
