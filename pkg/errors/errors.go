package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error
type Kind string

const (
	// Request errors
	KindValidation   Kind = "ValidationError"
	KindUnauthorized Kind = "Unauthorized"
	KindForbidden    Kind = "Forbidden"
	KindNotFound     Kind = "NotFound"

	// Identity errors
	KindAuthentication Kind = "AuthenticationError"
	KindUsernameExists Kind = "UsernameExists"

	// Everything else
	KindInternal Kind = "InternalError"
)

// AppError is the single error type crossing the operation boundary.
// Every failure is converted to one of these before it becomes a response.
type AppError struct {
	Kind       Kind   `json:"kind"`
	Message    string `json:"message"`
	Cause      error  `json:"-"`
	HTTPStatus int    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// Constructor functions for the error taxonomy

// NewValidationError creates a validation error (400)
func NewValidationError(message string) *AppError {
	return &AppError{
		Kind:       KindValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewUnauthorizedError creates an unauthorized error (401)
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "User not authenticated"
	}
	return &AppError{
		Kind:       KindUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbiddenError creates a forbidden error (403)
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "Access denied"
	}
	return &AppError{
		Kind:       KindForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewNotFoundError creates a not found error (404)
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Kind:       KindNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewAuthenticationError creates a bad-credentials error (401)
func NewAuthenticationError(message string) *AppError {
	if message == "" {
		message = "Authentication failed"
	}
	return &AppError{
		Kind:       KindAuthentication,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewUsernameExistsError creates a duplicate sign-up error (400)
func NewUsernameExistsError(message string) *AppError {
	if message == "" {
		message = "User with this email already exists"
	}
	return &AppError{
		Kind:       KindUsernameExists,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInternalError creates an internal error (500)
func NewInternalError(message string) *AppError {
	return &AppError{
		Kind:       KindInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Helper functions

// GetAppError extracts an AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsKind checks if an error is of a specific kind
func IsKind(err error, kind Kind) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Kind == kind
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return IsKind(err, KindValidation)
}

// IsUnauthorized checks if an error is an unauthorized error
func IsUnauthorized(err error) bool {
	return IsKind(err, KindUnauthorized)
}

// IsForbidden checks if an error is a forbidden error
func IsForbidden(err error) bool {
	return IsKind(err, KindForbidden)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsKind(err, KindNotFound)
}

// IsAuthentication checks if an error is a bad-credentials error
func IsAuthentication(err error) bool {
	return IsKind(err, KindAuthentication)
}

// IsUsernameExists checks if an error is a duplicate sign-up error
func IsUsernameExists(err error) bool {
	return IsKind(err, KindUsernameExists)
}
