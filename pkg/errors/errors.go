package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeValidation indicates missing or malformed input, detected
	// before any network call is made
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeUnauthenticated indicates no token or an invalid token
	ErrorTypeUnauthenticated ErrorType = "UNAUTHENTICATED"

	// ErrorTypeVendor indicates a 4xx/5xx from the scheduling vendor,
	// with the vendor's own error code and description preserved
	ErrorTypeVendor ErrorType = "VENDOR"

	// ErrorTypeTimeout indicates a request exceeded its fixed budget
	ErrorTypeTimeout ErrorType = "TIMEOUT"

	// ErrorTypeNetwork indicates no response was received at all
	ErrorTypeNetwork ErrorType = "NETWORK"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type        ErrorType
	Message     string
	Description string // vendor-supplied error_description, when present
	Status      int    // HTTP status the error maps to
	Err         error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Status:  400,
	}
}

// NewUnauthenticatedError creates a new unauthenticated error
func NewUnauthenticatedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthenticated,
		Message: message,
		Status:  401,
	}
}

// NewVendorError creates an error carrying the vendor's error code,
// description and HTTP status through unchanged
func NewVendorError(code, description string, status int) *AppError {
	return &AppError{
		Type:        ErrorTypeVendor,
		Message:     code,
		Description: description,
		Status:      status,
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("%s timed out", operation),
		Status:  408,
	}
}

// NewNetworkError creates an error for requests that got no response
func NewNetworkError(operation string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeNetwork,
		Message: fmt.Sprintf("%s: no response received", operation),
		Status:  502,
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Status:  500,
		Err:     err,
	}
}

// AsAppError extracts an *AppError from an error chain, or wraps the
// error as INTERNAL if none is present
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err.Error(), err)
}

// IsTokenExpiry reports whether an error looks like an expired or
// rejected token: a 401/403 status, or vendor error text mentioning the
// token. Callers use it to trigger a session-level re-authentication
// prompt independent of which operation failed.
func IsTokenExpiry(err error) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	if appErr.Type == ErrorTypeUnauthenticated {
		return true
	}
	if appErr.Status == 401 || appErr.Status == 403 {
		return true
	}
	text := strings.ToLower(appErr.Message + " " + appErr.Description)
	return strings.Contains(text, "token") ||
		strings.Contains(text, "unauthorized") ||
		strings.Contains(text, "forbidden")
}
