package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies an error category independently of its message
type ErrorCode string

const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Project layout errors
	ErrMissingDocs    ErrorCode = "MISSING_DOCS"
	ErrNotInitialized ErrorCode = "NOT_INITIALIZED"
	ErrDevDocMissing  ErrorCode = "DEV_DOC_MISSING"
	ErrInstallStep    ErrorCode = "INSTALL_STEP"
	ErrTemplateEngine ErrorCode = "TEMPLATE_ENGINE"
	ErrCancelled      ErrorCode = "CANCELLED"
	ErrConfigLoad     ErrorCode = "CONFIG_LOAD"

	// FileSystem errors
	ErrFileRead      ErrorCode = "FILE_READ"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// SpeculateError is a structured error carrying a stable code and details
type SpeculateError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SpeculateError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SpeculateError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a SpeculateError with the same code
func (e *SpeculateError) Is(target error) bool {
	var targetErr *SpeculateError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SpeculateError with the given code and message
func New(code ErrorCode, message string) *SpeculateError {
	return &SpeculateError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SpeculateError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SpeculateError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error. It returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *SpeculateError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SpeculateError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *SpeculateError) WithDetail(key string, value interface{}) *SpeculateError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var specErr *SpeculateError
	if errors.As(err, &specErr) {
		return specErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SpeculateError
func GetErrorCode(err error) ErrorCode {
	var specErr *SpeculateError
	if errors.As(err, &specErr) {
		return specErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SpeculateError
func GetErrorDetails(err error) map[string]interface{} {
	var specErr *SpeculateError
	if errors.As(err, &specErr) {
		return specErr.Details
	}
	return nil
}
