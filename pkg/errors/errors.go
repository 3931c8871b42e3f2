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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Lifecycle errors
	ErrConfiguration      ErrorCode = "CONFIGURATION"
	ErrUnrecognizedAction ErrorCode = "UNRECOGNIZED_ACTION"
	ErrMissingIdentity    ErrorCode = "MISSING_IDENTITY"
	ErrRender             ErrorCode = "RENDER"

	// Document errors
	ErrElementNotFound ErrorCode = "ELEMENT_NOT_FOUND"
	ErrDocumentLoad    ErrorCode = "DOCUMENT_LOAD"

	// Script errors
	ErrScriptParse ErrorCode = "SCRIPT_PARSE"
)

// ChartError represents a structured error with code and details
type ChartError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ChartError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ChartError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ChartError) Is(target error) bool {
	var targetErr *ChartError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ChartError with the given code and message
func New(code ErrorCode, message string) *ChartError {
	return &ChartError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ChartError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ChartError {
	return &ChartError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ChartError
func Wrap(err error, code ErrorCode, message string) *ChartError {
	if err == nil {
		return nil
	}
	return &ChartError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ChartError {
	if err == nil {
		return nil
	}
	return &ChartError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ChartError) WithDetail(key string, value interface{}) *ChartError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ChartError) WithDetails(details map[string]interface{}) *ChartError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if any error in the chain, joined errors included,
// has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	return errors.Is(err, &ChartError{Code: code})
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ChartError
func GetErrorCode(err error) ErrorCode {
	var chartErr *ChartError
	if errors.As(err, &chartErr) {
		return chartErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ChartError
func GetErrorDetails(err error) map[string]interface{} {
	var chartErr *ChartError
	if errors.As(err, &chartErr) {
		return chartErr.Details
	}
	return nil
}

// Join combines errors, dropping nils. It returns nil when every error is nil.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
