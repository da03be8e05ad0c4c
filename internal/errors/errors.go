// Package errors provides the application error type used across the
// service, with machine-readable codes and HTTP status mapping.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	// ErrCodeNotFound indicates a referenced file or resource does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates the request input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required request field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeUnsupportedProvider indicates an unknown provider name was requested.
	ErrCodeUnsupportedProvider ErrorCode = "UNSUPPORTED_PROVIDER"
	// ErrCodeEngineFailure indicates the transcription backend failed.
	ErrCodeEngineFailure ErrorCode = "ENGINE_FAILURE"
	// ErrCodeConfigError indicates configuration could not be loaded or parsed.
	ErrCodeConfigError ErrorCode = "CONFIG_ERROR"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// --- Common error constructors ---

// NotFound creates a new AppError for a file or resource that was not found.
func NotFound(resource, path string) *AppError {
	return &AppError{
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf("%s not found: %s", resource, path),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"resource": resource, "path": path},
	}
}

// InvalidInput creates a new AppError for invalid request input.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(message, field string) *AppError {
	return &AppError{
		Code:       ErrCodeMissingField,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": field},
	}
}

// UnsupportedProvider creates a new AppError for an unknown provider name.
func UnsupportedProvider(name string) *AppError {
	return &AppError{
		Code:       ErrCodeUnsupportedProvider,
		Message:    fmt.Sprintf("Unknown STT provider: %s", name),
		HTTPStatus: http.StatusInternalServerError,
		Details:    map[string]any{"provider": name},
	}
}

// EngineFailure creates a new AppError carrying a transcription backend
// error. The original message is preserved verbatim.
func EngineFailure(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeEngineFailure,
		Message:    cause.Error(),
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ConfigError creates a new AppError for a configuration load or parse failure.
func ConfigError(message string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeConfigError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// Internal creates a new AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       ErrCodeInternal,
		Message:    cause.Error(),
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}
