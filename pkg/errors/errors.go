// Package errors provides structured error handling for formidable.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindValidation indicates a validation failure that could not be
	// translated into a field error.
	KindValidation
	// KindSchema indicates a schema that could not be loaded or evaluated.
	KindSchema
	// KindConfig indicates a binding or engine configured with an
	// incompatible field shape.
	KindConfig
	// KindStorage indicates a draft store failure.
	KindStorage
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindSchema:
		return "schema"
	case KindConfig:
		return "config"
	case KindStorage:
		return "storage"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// FormError represents a structured error raised around a form.
type FormError struct {
	// Op is the operation that failed (e.g., "form.validateForm").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Field is the field key involved, if any.
	Field string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *FormError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s [%s] field=%s: %v", e.Op, e.Kind, e.Field, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *FormError) Unwrap() error {
	return e.Err
}

// ConfigError returns a FormError of kind KindConfig.
func ConfigError(op, field string, format string, args ...any) *FormError {
	return &FormError{
		Op:    op,
		Kind:  KindConfig,
		Field: field,
		Err:   fmt.Errorf(format, args...),
	}
}

// IsKind reports whether err is a *FormError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var fe *FormError
	if !stderrors.As(err, &fe) {
		return false
	}
	return fe.Kind == kind
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "form.validateField").
	Op string
	// Field is the field being handled, if any.
	Field string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" && e.Field != "" {
		return fmt.Sprintf("panic in %s field=%s: %v", e.Op, e.Field, e.Value)
	}
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by formidable.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *FormError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
