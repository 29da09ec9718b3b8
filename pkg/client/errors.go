package client

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrRetryExhausted is returned when all retry attempts are exhausted.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrContextCancelled is returned when the context is cancelled during retry.
	ErrContextCancelled = errors.New("context cancelled")
)

// ErrorClass represents a classification of request failures.
type ErrorClass string

const (
	// ErrorClassAPI represents a structured error reported by the ledger.
	ErrorClassAPI ErrorClass = "api"

	// ErrorClassConnectivity represents transport failures: the server is
	// unreachable, the request timed out, or the response carried no
	// usable body (5xx without a structured payload).
	ErrorClassConnectivity ErrorClass = "connectivity"

	// ErrorClassDecode represents responses that could not be decoded
	// into the expected shape.
	ErrorClassDecode ErrorClass = "decode"
)

// APIError is a structured error payload reported by the ledger server.
// The ledger assigns stable error codes (e.g. "SEQ202"); Code and
// Message come from the payload, RequestID is echoed from the request
// so failures can be correlated server-side.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"-"`

	// StatusCode is the HTTP status the payload arrived with.
	StatusCode int `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ledger API error %s: %s (%s)", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("ledger API error %s: %s", e.Code, e.Message)
}

// ConnectivityError wraps a transport-level failure.
type ConnectivityError struct {
	Err error
}

// Error implements the error interface.
func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("ledger connectivity error: %v", e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// DecodeError wraps a failure to decode a response body.
type DecodeError struct {
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("ledger response decode error: %v", e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// classify maps an error to its class for metrics and retry decisions.
func classify(err error) ErrorClass {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return ErrorClassAPI
	}
	var decodeErr *DecodeError
	if errors.As(err, &decodeErr) {
		return ErrorClassDecode
	}
	return ErrorClassConnectivity
}

// shouldRetry determines if an error should be retried based on its classification.
func shouldRetry(errorClass ErrorClass) bool {
	switch errorClass {
	case ErrorClassAPI:
		// Structured server errors are deterministic; retrying wastes requests.
		return false
	case ErrorClassDecode:
		// A malformed body will stay malformed.
		return false
	case ErrorClassConnectivity:
		return true
	default:
		return false
	}
}
