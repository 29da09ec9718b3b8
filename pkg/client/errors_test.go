package client

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "without detail",
			err:  &APIError{Code: "SEQ202", Message: "at least one key is required"},
			want: "ledger API error SEQ202: at least one key is required",
		},
		{
			name: "with detail",
			err:  &APIError{Code: "SEQ706", Message: "invalid filter", Detail: "placeholder $2 unbound"},
			want: "ledger API error SEQ706: invalid filter (placeholder $2 unbound)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConnectivityError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &ConnectivityError{Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is should reach the wrapped error")
	}
}

func TestDecodeError_Unwrap(t *testing.T) {
	inner := errors.New("unexpected end of JSON input")
	wrapped := fmt.Errorf("decode response: %w", &DecodeError{Err: inner})

	var decodeErr *DecodeError
	if !errors.As(wrapped, &decodeErr) {
		t.Error("errors.As should find DecodeError through wrapping")
	}
	if !errors.Is(wrapped, inner) {
		t.Error("errors.Is should reach the innermost error")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"api error", &APIError{Code: "SEQ202"}, ErrorClassAPI},
		{"wrapped api error", fmt.Errorf("request: %w", &APIError{Code: "SEQ202"}), ErrorClassAPI},
		{"decode error", &DecodeError{Err: errors.New("bad json")}, ErrorClassDecode},
		{"connectivity error", &ConnectivityError{Err: errors.New("timeout")}, ErrorClassConnectivity},
		{"unknown error", errors.New("anything else"), ErrorClassConnectivity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); got != tt.want {
				t.Errorf("classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		class ErrorClass
		want  bool
	}{
		{ErrorClassAPI, false},
		{ErrorClassDecode, false},
		{ErrorClassConnectivity, true},
		{ErrorClass("unknown"), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.class), func(t *testing.T) {
			if got := shouldRetry(tt.class); got != tt.want {
				t.Errorf("shouldRetry(%q) = %v, want %v", tt.class, got, tt.want)
			}
		})
	}
}
