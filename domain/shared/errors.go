/*
Package shared - domain-layer error primitives shared by subdomains.

Design notes:
 1. Sentinel errors back errors.Is() checks; they carry no instance data.
 2. DomainError captures the stack at creation time but defers formatting
    until a log line actually needs it.
 3. Domain errors carry no transport concepts (no HTTP status codes).
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	// ErrNotFound resource does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict resource conflict (concurrent modification, unique constraint)
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput input validation failure
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized caller is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden caller is authenticated but not allowed
	ErrForbidden = errors.New("forbidden")
)

// ============================================================================
// Structured domain error
// ============================================================================

// DomainError carries business context and the creation-point stack.
// Supports errors.Is() and errors.As() through Unwrap.
type DomainError struct {
	// Err is the underlying sentinel, used by errors.Is()
	Err error

	// Entity names the aggregate the error belongs to ("order", "product")
	Entity string

	// Message is the human-readable description
	Message string

	// Field optionally names the offending field for validation errors
	Field string

	// stack holds raw frames captured at creation, formatted on demand
	stack []uintptr
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes the sentinel for errors.Is() / errors.As().
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured stack, one string per frame.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// ============================================================================
// Stack capture helpers
// ============================================================================

// CaptureStack captures the current call stack. skip is the number of
// frames to drop (usually 3: Callers, CaptureStack, NewXxxError).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders raw frames as strings, filtering runtime internals
// and capping at ten frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// ============================================================================
// Constructors
// ============================================================================

// NewNotFoundError creates a "not found" domain error with stack.
func NewNotFoundError(entity string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: entity + " not found",
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a "conflict" domain error with stack.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a validation domain error with stack.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewForbiddenError creates a "forbidden" domain error with stack.
func NewForbiddenError(entity, reason string) error {
	return &DomainError{
		Err:     ErrForbidden,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// ============================================================================
// Stacker
// ============================================================================

// Stacker is implemented by errors that can report their creation stack.
// The API layer uses it to log the point of failure.
type Stacker interface {
	Stack() []string
}
