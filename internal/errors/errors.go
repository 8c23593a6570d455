package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches on Code so wrapped copies still compare equal to the sentinel
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Error codes
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeDuplicateCredential = "DUPLICATE_CREDENTIAL"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeMissingInput        = "MISSING_INPUT"
	CodeMissingToken        = "MISSING_TOKEN"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeTokenExpired        = "TOKEN_EXPIRED"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeInvalidSortField    = "INVALID_SORT_FIELD"
	CodeInternal            = "INTERNAL_ERROR"
)

// Predefined domain errors
var (
	// Credential errors
	ErrValidation          = NewDomainError(CodeValidation, "Validation failed")
	ErrInvalidUserID       = NewDomainError(CodeValidation, "Invalid user ID")
	ErrDuplicateCredential = NewDomainError(CodeDuplicateCredential, "User with this email already exists")
	ErrInvalidCredentials  = NewDomainError(CodeInvalidCredentials, "Invalid email or password")

	// Token errors
	ErrMissingRefreshToken = NewDomainError(CodeMissingInput, "Refresh token is required")
	ErrMissingToken        = NewDomainError(CodeMissingToken, "Access token is required")
	ErrInvalidToken        = NewDomainError(CodeInvalidToken, "Invalid or expired token")
	ErrInvalidRefreshToken = NewDomainError(CodeInvalidToken, "Invalid refresh token")
	ErrTokenExpired        = NewDomainError(CodeTokenExpired, "Refresh token has expired")

	// User errors
	ErrUserNotFound     = NewDomainError(CodeUserNotFound, "User not found")
	ErrInvalidSortField = NewDomainError(CodeInvalidSortField, "Invalid sort field")

	// System errors
	ErrInternal = NewDomainError(CodeInternal, "Internal server error")
)

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	// Default to internal server error for unknown errors
	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case CodeValidation, CodeDuplicateCredential, CodeMissingInput, CodeInvalidSortField:
		return http.StatusBadRequest

	// 401 Unauthorized
	case CodeInvalidCredentials, CodeMissingToken, CodeInvalidToken, CodeTokenExpired:
		return http.StatusUnauthorized

	// 404 Not Found
	case CodeUserNotFound:
		return http.StatusNotFound

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// Cause returns the wrapped error text of a domain error, or "" when there is none
func Cause(err error) string {
	domainErr := GetDomainError(err)
	if domainErr == nil {
		if err == nil {
			return ""
		}
		return err.Error()
	}
	if domainErr.Err == nil {
		return ""
	}
	return domainErr.Err.Error()
}
