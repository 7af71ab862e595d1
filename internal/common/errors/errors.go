// Package errors provides standardized error handling for the report pipeline.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Upstream generation tiers. Recovered inside the orchestrator by
	// advancing to the next tier, never surfaced to callers.
	ErrCodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeMalformedUpstream   ErrorCode = "MALFORMED_UPSTREAM_RESPONSE"

	// Client-visible errors.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"

	// Fatal pipeline errors, surfaced as server errors.
	ErrCodePersistenceFailed ErrorCode = "PERSISTENCE_FAILED"
	ErrCodeRenderFailed      ErrorCode = "RENDER_FAILED"
)

// AppError represents a structured application error.
type AppError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
	cause     error
}

func (e *AppError) Error() string {
	return fmt.Sprintf("AppError[%s]: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// NewUpstreamUnavailableError creates a tier failure for a network error,
// timeout, or non-success status from a generation service.
func NewUpstreamUnavailableError(service string, err error) *AppError {
	return &AppError{
		Code:      ErrCodeUpstreamUnavailable,
		Message:   fmt.Sprintf("Generation service '%s' unavailable", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewMalformedUpstreamError creates a tier failure for a response body whose
// shape does not match the service contract.
func NewMalformedUpstreamError(service, details string) *AppError {
	return &AppError{
		Code:      ErrCodeMalformedUpstream,
		Message:   fmt.Sprintf("Generation service '%s' returned a malformed response", service),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError creates a non-retryable client input error.
func NewValidationError(details string) *AppError {
	return &AppError{
		Code:      ErrCodeValidation,
		Message:   "Missing or invalid required fields",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotFoundError creates a non-retryable not-found error. Covers both a
// missing resource and a resource owned by another user.
func NewNotFoundError(resource, details string) *AppError {
	return &AppError{
		Code:      ErrCodeNotFound,
		Message:   fmt.Sprintf("%s not found or access denied", resource),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPersistenceError creates a retryable storage read/write error. Fatal to
// the pipeline that hit it.
func NewPersistenceError(operation string, err error) *AppError {
	return &AppError{
		Code:      ErrCodePersistenceFailed,
		Message:   fmt.Sprintf("Storage operation '%s' failed", operation),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewRenderError creates a non-retryable document construction error.
func NewRenderError(err error) *AppError {
	return &AppError{
		Code:      ErrCodeRenderFailed,
		Message:   "Report document rendering failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// CodeOf extracts the ErrorCode from err, or empty when err is not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// IsTierFailure reports whether err is recoverable by advancing generation tiers.
func IsTierFailure(err error) bool {
	code := CodeOf(err)
	return code == ErrCodeUpstreamUnavailable || code == ErrCodeMalformedUpstream
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

// IsValidation reports whether err carries the VALIDATION_ERROR code.
func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

// HTTPStatus maps an error to the status code reported to API callers.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodePersistenceFailed, ErrCodeRenderFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
