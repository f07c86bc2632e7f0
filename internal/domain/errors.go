package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for catalog operations
var (
	// ErrAuthFailed indicates the API key was rejected
	ErrAuthFailed = errors.New("API key was rejected")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("resource not found")
)

// StatusError is returned when the catalog answers with a non-success HTTP status
type StatusError struct {
	StatusCode int
	Message    string // Server-provided detail, may be empty
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("request failed: HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is lets errors.Is match the sentinels for well-known status codes
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrAuthFailed:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// TransportError is returned when a request could not complete at all
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
