// Package apperror provides domain-specific error types for econcal. These
// errors carry an HTTP status code and a user-safe message. The Echo error
// handler maps them to appropriate HTTP responses automatically.
//
// NEVER return raw upstream or infrastructure errors to the client. Always
// wrap them in an apperror type or return a generic internal error.
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/finbrief/econcal/internal/dates"
)

// ErrUpstream marks failures of the upstream data provider: network errors,
// non-200 responses, undecodable payloads. Repositories wrap it into their
// fetch errors so FromError can classify provider outages as 502 instead of
// lumping them in with server bugs.
var ErrUpstream = errors.New("upstream provider failure")

// AppError is the base error type for all domain errors. It carries an
// HTTP status code, a machine-readable error type, and a human-readable
// message safe to show to the client.
type AppError struct {
	// Code is the HTTP status code (e.g., 404, 400, 502).
	Code int `json:"-"`

	// Type is a machine-readable error classifier (e.g., "invalid_date").
	Type string `json:"type"`

	// Message is a human-readable description safe for the client.
	Message string `json:"message"`

	// Internal holds the underlying error for logging. Never exposed to client.
	Internal error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Internal
}

// --- Constructors for common error types ---

// NewNotFound creates a 404 Not Found error.
func NewNotFound(message string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Type:    "not_found",
		Message: message,
	}
}

// NewBadRequest creates a 400 Bad Request error.
func NewBadRequest(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Type:    "bad_request",
		Message: message,
	}
}

// NewInvalidDate creates a 400 error for an unparseable date. The offending
// value appears in the message so API callers can see what was rejected.
func NewInvalidDate(err *dates.InvalidDateError) *AppError {
	return &AppError{
		Code:     http.StatusBadRequest,
		Type:     "invalid_date",
		Message:  fmt.Sprintf("Not a valid calendar date: %q. Expected YYYY-MM-DD.", err.Value),
		Internal: err,
	}
}

// NewUpstream creates a 502 error for upstream events API failures. The
// client sees a generic message; the real cause goes to the log.
func NewUpstream(err error) *AppError {
	return &AppError{
		Code:     http.StatusBadGateway,
		Type:     "upstream_error",
		Message:  "The events data provider is currently unavailable. Please try again.",
		Internal: err,
	}
}

// NewInternal creates a 500 Internal Server Error. The real error is stored
// in Internal for logging but the client only sees a generic message.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:     http.StatusInternalServerError,
		Type:     "internal_error",
		Message:  "An unexpected error occurred. Please try again.",
		Internal: err,
	}
}

// FromError classifies an arbitrary error into an AppError. Known domain
// errors keep their status; unparseable dates become 400s; anything else is
// treated as an upstream/internal failure per wrapped type.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	var dateErr *dates.InvalidDateError
	if errors.As(err, &dateErr) {
		return NewInvalidDate(dateErr)
	}
	if errors.Is(err, ErrUpstream) {
		return NewUpstream(err)
	}
	return NewInternal(err)
}

// SafeMessage returns the client-safe error message from an error. If the
// error is an AppError, returns its Message field (which is safe to expose).
// For any other error type, returns a generic message to prevent leaking
// internal details like upstream URLs or request structure.
func SafeMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "an unexpected error occurred"
}
