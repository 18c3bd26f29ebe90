// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrDataNotFound     = errors.New("data not found")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrUnknownStrategy  = errors.New("unknown strategy")
	ErrTipsterExists    = errors.New("tipster already registered")
	ErrTipsterNotFound  = errors.New("tipster not found")
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// StoreError represents an error from the persistence layer.
type StoreError struct {
	Operation string
	Entity    string
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error [%s] %s: %v", e.Operation, e.Entity, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(operation, entity string, err error) *StoreError {
	return &StoreError{
		Operation: operation,
		Entity:    entity,
		Err:       err,
	}
}

// ImportError represents a failure while importing external bet data.
type ImportError struct {
	File    string
	Line    int
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("import error [%s:%d]: %s: %v", e.File, e.Line, e.Message, e.Err)
	}
	return fmt.Sprintf("import error [%s:%d]: %s", e.File, e.Line, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(file string, line int, message string, err error) *ImportError {
	return &ImportError{
		File:    file,
		Line:    line,
		Message: message,
		Err:     err,
	}
}
