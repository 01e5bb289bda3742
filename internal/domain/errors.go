package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// SetupError indicates a fatal configuration or environment problem
	// the operator must fix before the system can work: no usable
	// credentials, or the pre-shared root folder missing. Never retried.
	SetupError struct {
		Message string
	}

	// UpstreamError indicates a Google API call failed. Distinguished
	// from NotFoundError so a backend hiccup is not reported as a
	// lookup miss.
	UpstreamError struct {
		Message string
		Err     error
	}
)

// Error implementations
func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *SetupError) Error() string        { return e.Message }

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *SetupError) StatusCode() int        { return http.StatusServiceUnavailable }
func (e *UpstreamError) StatusCode() int     { return http.StatusBadGateway }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrSetup        = errors.New("setup required")
	ErrUpstream     = errors.New("upstream failure")
)

// Is hooks let errors.Is() match typed errors against the sentinels.
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }
func (e *SetupError) Is(target error) bool        { return target == ErrSetup }
func (e *UpstreamError) Is(target error) bool     { return target == ErrUpstream }
