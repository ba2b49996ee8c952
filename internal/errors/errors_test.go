package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := New(CodeValidation, "invalid input")

	expected := "[VALIDATION_ERROR] invalid input"
	if err.Error() != expected {
		t.Errorf("expected '%s', got '%s'", expected, err.Error())
	}
}

func TestAppError_ErrorWithWrapped(t *testing.T) {
	inner := errors.New("connection refused")
	err := Wrap(inner, CodeDatabaseConnection, "failed to connect")

	expected := "[DATABASE_CONNECTION_ERROR] failed to connect: connection refused"
	if err.Error() != expected {
		t.Errorf("expected '%s', got '%s'", expected, err.Error())
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("root cause")
	err := Wrap(inner, CodeDatabase, "query failed")

	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to find the wrapped error")
	}
	if errors.Unwrap(err) != inner {
		t.Error("expected Unwrap to return the inner error")
	}
}

func TestAppError_WithContext(t *testing.T) {
	err := New(CodeExternalService, "request failed").
		WithContext("service", "tmdb").
		WithContext("movie_id", 603)

	if err.Context["service"] != "tmdb" {
		t.Errorf("expected context service 'tmdb', got %v", err.Context["service"])
	}
	if err.Context["movie_id"] != 603 {
		t.Errorf("expected context movie_id 603, got %v", err.Context["movie_id"])
	}
}

func TestValidationError(t *testing.T) {
	err := ValidationError("invalid genre: Slasher")

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if !IsValidationError(err) {
		t.Error("expected IsValidationError to be true")
	}
}

func TestNotFoundError(t *testing.T) {
	err := NotFoundError("movie", "603")

	if err.Code != CodeNotFound {
		t.Errorf("expected code %s, got %s", CodeNotFound, err.Code)
	}
	if err.Message != "movie not found: 603" {
		t.Errorf("unexpected message '%s'", err.Message)
	}
}

func TestExternalServiceError(t *testing.T) {
	inner := errors.New("timeout")
	err := ExternalServiceError("tmdb", "discovery failed", inner)

	if err.Code != CodeExternalService {
		t.Errorf("expected code %s, got %s", CodeExternalService, err.Code)
	}
	if err.Context["service"] != "tmdb" {
		t.Errorf("expected service context, got %v", err.Context)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"timeout", New(CodeServiceTimeout, "timed out"), true},
		{"unavailable", New(CodeServiceUnavailable, "down"), true},
		{"rate limited", New(CodeRateLimited, "slow down"), true},
		{"db connection", New(CodeDatabaseConnection, "refused"), true},
		{"validation", New(CodeValidation, "bad input"), false},
		{"duplicate", New(CodeDuplicateRecord, "exists"), false},
		{"plain error", errors.New("something"), false},
		{"wrapped retryable", fmt.Errorf("outer: %w", New(CodeRateLimited, "slow down")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.retryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.retryable)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if code := GetErrorCode(New(CodeDuplicateRecord, "exists")); code != CodeDuplicateRecord {
		t.Errorf("expected %s, got %s", CodeDuplicateRecord, code)
	}
	if code := GetErrorCode(errors.New("plain")); code != CodeUnknown {
		t.Errorf("expected %s for plain error, got %s", CodeUnknown, code)
	}
}
