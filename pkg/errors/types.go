package errors

import (
	"fmt"
)

// ErrorCategory represents different types of errors that can occur
type ErrorCategory string

const (
	ErrorColumn     ErrorCategory = "column"
	ErrorValidation ErrorCategory = "validation"
	ErrorConfig     ErrorCategory = "config"
	ErrorClipboard  ErrorCategory = "clipboard"
	ErrorInternal   ErrorCategory = "internal"
)

// Error codes
const (
	CodeColumnNotFound = "COLUMN_NOT_FOUND"
	CodeColumnHidden   = "COLUMN_HIDDEN"
	CodeInvalidMode    = "INVALID_MODE"
	CodeConfigParse    = "CONFIG_PARSE"
	CodeInvalidArg     = "INVALID_ARGUMENT"
	CodeUnknownCommand = "UNKNOWN_COMMAND"
)

// GridError represents a structured error with metadata
type GridError struct {
	Category ErrorCategory          `json:"category"`
	Code     string                 `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Cause    error                  `json:"cause,omitempty"`
	Context  map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *GridError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap implements the error unwrapping interface
func (e *GridError) Unwrap() error {
	return e.Cause
}

// Is matches on category and code. A target with an empty code matches any
// error of the same category.
func (e *GridError) Is(target error) bool {
	t, ok := target.(*GridError)
	if !ok {
		return false
	}
	if e.Category != t.Category {
		return false
	}
	return t.Code == "" || e.Code == t.Code
}

// WithContext adds contextual information to the error
func (e *GridError) WithContext(key string, value interface{}) *GridError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithCause sets the underlying cause of this error
func (e *GridError) WithCause(cause error) *GridError {
	e.Cause = cause
	return e
}

// WithDetails adds additional details to the error
func (e *GridError) WithDetails(details string) *GridError {
	e.Details = details
	return e
}

// New creates a new GridError with the specified parameters
func New(category ErrorCategory, code, message string) *GridError {
	return &GridError{
		Category: category,
		Code:     code,
		Message:  message,
	}
}

// Wrap creates a new GridError that wraps an existing error
func Wrap(err error, category ErrorCategory, code, message string) *GridError {
	return New(category, code, message).WithCause(err)
}

// ErrColumnResolution matches every column resolution failure through errors.Is.
var ErrColumnResolution = &GridError{Category: ErrorColumn}

// ColumnNotFound reports a field name that matches no column.
func ColumnNotFound(field string) *GridError {
	return New(ErrorColumn, CodeColumnNotFound, "column not found").
		WithDetails(field).
		WithContext("field", field)
}

// ColumnHidden reports a field name whose column is hidden and therefore has
// no visible index.
func ColumnHidden(field string) *GridError {
	return New(ErrorColumn, CodeColumnHidden, "column is hidden").
		WithDetails(field).
		WithContext("field", field)
}

// ValidationError creates a validation-related error
func ValidationError(code, message string) *GridError {
	return New(ErrorValidation, code, message)
}

// ConfigError creates a configuration-related error
func ConfigError(code, message string) *GridError {
	return New(ErrorConfig, code, message)
}

// IsColumnResolution reports whether err is a column resolution failure.
func IsColumnResolution(err error) bool {
	var ge *GridError
	if !As(err, &ge) {
		return false
	}
	return ge.Category == ErrorColumn
}

// IsCategory checks if the error belongs to a specific category
func (e *GridError) IsCategory(category ErrorCategory) bool {
	return e.Category == category
}

// IsCode checks if the error has a specific code
func (e *GridError) IsCode(code string) bool {
	return e.Code == code
}
