// Package errors provides structured errors with stable codes for the
// action execution core. Codes let callers and tests branch on failure
// class without matching message text, while messages stay user-facing.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPermission   ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Action errors
	ErrActionInvalid ErrorCode = "ACTION_INVALID"
	ErrActionExecute ErrorCode = "ACTION_EXECUTE"

	// Serialization errors
	ErrSerializationEncode ErrorCode = "SERIALIZATION_ENCODE"
	ErrSerializationDecode ErrorCode = "SERIALIZATION_DECODE"

	// Manifest errors
	ErrManifestParse   ErrorCode = "MANIFEST_PARSE"
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"

	// FileSystem errors
	ErrFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// MasonError represents a structured error with code and details
type MasonError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MasonError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MasonError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MasonError) Is(target error) bool {
	var targetErr *MasonError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MasonError with the given code and message
func New(code ErrorCode, message string) *MasonError {
	return &MasonError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MasonError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MasonError {
	return &MasonError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MasonError
func Wrap(err error, code ErrorCode, message string) *MasonError {
	if err == nil {
		return nil
	}
	return &MasonError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MasonError {
	if err == nil {
		return nil
	}
	return &MasonError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MasonError) WithDetail(key string, value interface{}) *MasonError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var masonErr *MasonError
	if errors.As(err, &masonErr) {
		return masonErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MasonError
func GetErrorCode(err error) ErrorCode {
	var masonErr *MasonError
	if errors.As(err, &masonErr) {
		return masonErr.Code
	}
	return ErrUnknown
}
