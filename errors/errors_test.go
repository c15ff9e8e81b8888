package errors

import (
	stderrors "errors"
	"testing"
)

func TestDecodeParsesEnvelope(t *testing.T) {
	body := []byte(`{"code":"NOT_FOUND","message":"farm f1 does not exist","details":{"id":"f1"}}`)
	e := Decode(404, body, nil)
	if e.Code != ErrCodeNotFound {
		t.Errorf("Code = %q, want NOT_FOUND", e.Code)
	}
	if e.Message != "farm f1 does not exist" {
		t.Errorf("Message = %q", e.Message)
	}
	if e.Details["id"] != "f1" {
		t.Errorf("Details = %v", e.Details)
	}
	if e.HTTPStatus != 404 {
		t.Errorf("HTTPStatus = %d", e.HTTPStatus)
	}
	if e.Retryable {
		t.Error("Retryable = true for NOT_FOUND")
	}
}

func TestDecodeSynthesizesFromStatus(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   ErrorCode
	}{
		{404, "", ErrCodeNotFound},
		{401, "plain text", ErrCodeUnauthorized},
		{409, `{"no":"code"}`, ErrCodeConflict},
		{422, "", ErrCodeInvalidInput},
		{429, "", ErrCodeRateLimited},
		{500, "", ErrCodeInternal},
		{503, "", ErrCodeServiceUnavailable},
	}
	for _, tt := range tests {
		e := Decode(tt.status, []byte(tt.body), nil)
		if e.Code != tt.want {
			t.Errorf("Decode(%d, %q).Code = %q, want %q", tt.status, tt.body, e.Code, tt.want)
		}
	}
}

func TestDecodePreservesCause(t *testing.T) {
	cause := stderrors.New("transport detail")
	e := Decode(503, nil, cause)
	if !stderrors.Is(e, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	if !e.Retryable {
		t.Error("Retryable = false for SERVICE_UNAVAILABLE")
	}
}

func TestIsHelpers(t *testing.T) {
	notFound := New(ErrCodeNotFound, "gone")
	if !IsNotFound(notFound) {
		t.Error("IsNotFound = false")
	}
	if IsConflict(notFound) {
		t.Error("IsConflict = true for NOT_FOUND")
	}
	if !IsCode(notFound, ErrCodeNotFound) {
		t.Error("IsCode = false")
	}
	if IsNotFound(stderrors.New("plain")) {
		t.Error("IsNotFound matched a plain error")
	}
}

func TestIsRetryableCode(t *testing.T) {
	if !IsRetryableCode(ErrCodeTimeout) || !IsRetryableCode(ErrCodeInternal) {
		t.Error("availability codes should be retryable")
	}
	if IsRetryableCode(ErrCodeInvalidInput) || IsRetryableCode(ErrCodeConflict) {
		t.Error("request errors should not be retryable")
	}
}
