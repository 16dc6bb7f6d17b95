package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a category of console error.
type ErrorCode string

const (
	// ErrCodeNotFound indicates the backend reported a missing resource (404).
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodeConflict indicates a conflict with existing data (409).
	ErrCodeConflict ErrorCode = "conflict"
	// ErrCodeValidation indicates the backend rejected the input (4xx with field messages).
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeClientValidation indicates a local pre-submit check failed; no request was sent.
	ErrCodeClientValidation ErrorCode = "client_validation"
	// ErrCodeInvalidCredential indicates the supplied current password was rejected.
	ErrCodeInvalidCredential ErrorCode = "invalid_credential"
	// ErrCodeAuth indicates an authentication failure (401).
	ErrCodeAuth ErrorCode = "auth"
	// ErrCodeForbidden indicates the caller lacks the role required by the backend (403).
	ErrCodeForbidden ErrorCode = "forbidden"
	// ErrCodeNetwork indicates no response was received.
	ErrCodeNetwork ErrorCode = "network"
	// ErrCodeServer indicates a backend failure (5xx).
	ErrCodeServer ErrorCode = "server"
	// ErrCodeInternal indicates a local failure (encoding, storage, wiring).
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured console error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message suitable for notifications
	Message string
	// Status is the HTTP status of the backend response, zero when none was received
	Status int
	// Cause is the underlying error that caused this error (optional)
	Cause error
	// Field is the specific field that caused the error (optional, for validation errors)
	Field string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
		if e.Status != 0 {
			msg = fmt.Sprintf("%s (status %d)", e.Code, e.Status)
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

func newError(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NotFound creates a new NotFound error.
func NotFound(message string) *AppError { return newError(ErrCodeNotFound, message) }

// NotFoundf creates a new NotFound error with formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return newError(ErrCodeNotFound, fmt.Sprintf(format, args...))
}

// Conflict creates a new Conflict error.
func Conflict(message string) *AppError { return newError(ErrCodeConflict, message) }

// Validation creates a new Validation error.
func Validation(message string) *AppError { return newError(ErrCodeValidation, message) }

// Validationf creates a new Validation error with formatted message.
func Validationf(format string, args ...any) *AppError {
	return newError(ErrCodeValidation, fmt.Sprintf(format, args...))
}

// ClientValidation creates an error for a failed local form check.
func ClientValidation(message string) *AppError {
	return newError(ErrCodeClientValidation, message)
}

// ClientValidationField creates a ClientValidation error for a specific field.
func ClientValidationField(field, message string) *AppError {
	return &AppError{
		Code:    ErrCodeClientValidation,
		Message: message,
		Field:   field,
	}
}

// InvalidCredential creates a new InvalidCredential error.
func InvalidCredential(message string) *AppError {
	return newError(ErrCodeInvalidCredential, message)
}

// Auth creates a new Auth error.
func Auth(message string) *AppError { return newError(ErrCodeAuth, message) }

// Internal creates a new Internal error.
func Internal(message string) *AppError { return newError(ErrCodeInternal, message) }

// Internalf creates a new Internal error with formatted message.
func Internalf(format string, args ...any) *AppError {
	return newError(ErrCodeInternal, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// FromStatus builds the error for a non-2xx backend response.
func FromStatus(status int, message string) *AppError {
	return &AppError{
		Code:    CodeForStatus(status),
		Message: message,
		Status:  status,
	}
}

// CodeForStatus maps an HTTP status to the console error taxonomy.
func CodeForStatus(status int) ErrorCode {
	switch {
	case status == 401:
		return ErrCodeAuth
	case status == 403:
		return ErrCodeForbidden
	case status == 404:
		return ErrCodeNotFound
	case status == 409:
		return ErrCodeConflict
	case status == 408:
		return ErrCodeTimeout
	case status >= 500:
		return ErrCodeServer
	case status >= 400:
		return ErrCodeValidation
	default:
		return ErrCodeInternal
	}
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool { return isCode(err, ErrCodeNotFound) }

// IsConflict checks if an error is a Conflict error.
func IsConflict(err error) bool { return isCode(err, ErrCodeConflict) }

// IsValidation checks if an error is a backend Validation error.
func IsValidation(err error) bool { return isCode(err, ErrCodeValidation) }

// IsClientValidation checks if an error is a local form validation error.
func IsClientValidation(err error) bool { return isCode(err, ErrCodeClientValidation) }

// IsInvalidCredential checks if an error is an InvalidCredential error.
func IsInvalidCredential(err error) bool { return isCode(err, ErrCodeInvalidCredential) }

// IsAuth checks if an error is an Auth error.
func IsAuth(err error) bool { return isCode(err, ErrCodeAuth) }

// IsForbidden checks if an error is a Forbidden error.
func IsForbidden(err error) bool { return isCode(err, ErrCodeForbidden) }

// IsNetwork checks if an error is a Network error.
func IsNetwork(err error) bool { return isCode(err, ErrCodeNetwork) }

// IsServer checks if an error is a Server error.
func IsServer(err error) bool { return isCode(err, ErrCodeServer) }

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool { return isCode(err, ErrCodeTimeout) }

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool { return isCode(err, ErrCodeCanceled) }

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// GetStatus returns the HTTP status carried by an error, or zero.
func GetStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}

// GetField returns the Field from an error, or empty string if not an AppError or no field set.
func GetField(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// NoResponseHint is appended to the fallback message when no response was received.
const NoResponseHint = "No response from server."

// UserMessage normalizes err into a single display string.
// AppError messages win; other errors fall back to fallback, or err.Error() when fallback is empty.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		if strings.TrimSpace(appErr.Message) != "" {
			return appErr.Message
		}
		if appErr.Code == ErrCodeNetwork && fallback != "" {
			if strings.HasSuffix(fallback, ".") {
				return fallback + " " + NoResponseHint
			}
			return fallback + ". " + NoResponseHint
		}
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
