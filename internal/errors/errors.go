package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies pipeline errors so callers can decide between
// aborting a load and degrading gracefully.
type ErrorType string

const (
	// ErrTypeSchema marks a required column missing from the input table.
	// Fatal: the load is aborted and no rows are returned.
	ErrTypeSchema ErrorType = "SCHEMA"
	// ErrTypeParse marks a row-level coercion failure. The offending row
	// is dropped and counted; the load continues.
	ErrTypeParse ErrorType = "PARSE"
	// ErrTypeSchemaMismatch marks a model applied to a table that lacks a
	// feature the model was trained on. Fatal for that call only.
	ErrTypeSchemaMismatch ErrorType = "SCHEMA_MISMATCH"
	// ErrTypeConfig marks an invalid parameter (e.g. cluster count < 2).
	ErrTypeConfig ErrorType = "CONFIG"
	// ErrTypeValidation marks a failed data or configuration validation.
	ErrTypeValidation ErrorType = "VALIDATION"
	// ErrTypeStorage marks a filesystem read/write failure.
	ErrTypeStorage ErrorType = "STORAGE"
)

// AppError is the application error carrying a type, message, wrapped
// cause and optional key/value context.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewSchemaError creates a schema error for a missing required column.
func NewSchemaError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSchema, message, cause)
}

// NewParseError creates a row-level parse error.
func NewParseError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParse, message, cause)
}

// NewSchemaMismatchError creates an error for a model/table schema mismatch.
func NewSchemaMismatchError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSchemaMismatch, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewStorageError creates a storage error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// IsType reports whether err is an AppError of the given type anywhere
// in its chain.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// IsSchema reports whether err is a schema error.
func IsSchema(err error) bool { return IsType(err, ErrTypeSchema) }

// IsParse reports whether err is a parse error.
func IsParse(err error) bool { return IsType(err, ErrTypeParse) }

// IsSchemaMismatch reports whether err is a schema mismatch error.
func IsSchemaMismatch(err error) bool { return IsType(err, ErrTypeSchemaMismatch) }

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool { return IsType(err, ErrTypeConfig) }
