package httpclient

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"
)

// QueryParam is a single URL query parameter. Parameters are encoded in the
// order they appear on the request; a nil Value drops the parameter entirely.
type QueryParam struct {
	Key   string
	Value any
}

// Request describes one logical API call. It is immutable once handed to
// Do: the engine never mutates it, and callers must not reuse the Body
// reader semantics of net/http (the body here is a value, serialized once).
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, PATCH, DELETE).
	Method string
	// Path is appended to the client's BaseURL. Can be a full URL if BaseURL is empty.
	Path string
	// Headers are request-specific headers. They override client defaults on collision.
	Headers map[string]string
	// Query are URL query parameters, encoded in order. nil values are omitted.
	Query []QueryParam
	// Body is the request body. Accepts []byte, string, or any value that
	// will be JSON-encoded. Serialized once per logical call.
	Body any
	// Timeout bounds each individual attempt. Zero means the client default.
	Timeout time.Duration
	// Validator, when non-nil, is applied to the body of a successful
	// response before it is returned. A validation failure is terminal and
	// never retried.
	Validator ResponseValidator
}

// ResponseValidator checks the structure of a successful response body.
// validation.Schema provides a struct-tag-driven implementation.
type ResponseValidator interface {
	Validate(body []byte) error
}

// Response is the result of a successful request.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// encodeQuery serializes parameters preserving their order. A nil value
// (typed or untyped) omits the parameter; pointers are dereferenced and
// everything else is formatted with fmt.Sprint and escaped.
func encodeQuery(params []QueryParam) string {
	var b strings.Builder
	for _, p := range params {
		v, ok := paramValue(p.Value)
		if !ok {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(v))
	}
	return b.String()
}

// paramValue resolves a query parameter value to its string form.
// Returns ok=false when the parameter should be omitted.
func paramValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		rv = rv.Elem()
	}
	return fmt.Sprint(rv.Interface()), true
}
