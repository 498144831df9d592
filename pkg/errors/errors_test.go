package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeClientUnavailable, "query missing: %s", "empty")

	if err.Code != ErrCodeClientUnavailable {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeClientUnavailable)
	}

	if err.Message != "query missing: empty" {
		t.Errorf("Message = %v, want %v", err.Message, "query missing: empty")
	}

	expected := "CLIENT_UNAVAILABLE: query missing: empty"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeConnectFailure, cause, "connect to bucket")

	if err.Code != ErrCodeConnectFailure {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeConnectFailure)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "CONNECT_FAILURE: connect to bucket: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeReadFailure, "test"),
			code:     ErrCodeReadFailure,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeReadFailure, "test"),
			code:     ErrCodeWriteFailure,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeReadFailure, New(ErrCodeNetwork, "inner"), "outer"),
			code:     ErrCodeReadFailure,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeReadFailure,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeReadFailure,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeJobNotInitialized, "test"), ErrCodeJobNotInitialized},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidConfig, "bucket is required")); got != "bucket is required" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"parse failure", New(ErrCodeParseFailure, "bad xml"), false},
		{"classification miss", New(ErrCodeClassificationMiss, "invalid.file"), false},
		{"client unavailable", New(ErrCodeClientUnavailable, "no client"), true},
		{"read failure", Wrap(ErrCodeReadFailure, errors.New("eof"), "read"), true},
		{"plain error", errors.New("boom"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fatal(tt.err); got != tt.want {
				t.Errorf("Fatal() = %v, want %v", got, tt.want)
			}
		})
	}
}
