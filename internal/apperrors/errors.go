package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel kinds; typed errors below match them via errors.Is.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("resource not found")
	ErrTransport  = errors.New("transport error")

	// ErrNoData is the only load failure surfaced to callers: both the
	// remote service and the local cache came up empty or unreadable.
	ErrNoData = errors.New("no loan data available")
)

// ValidationError names the offending field. Raised before any I/O.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string { return e.Field + " " + e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError carries the id that missed.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("loan %s not found", e.ID) }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// TransportError covers an unreachable remote or a non-success status.
// Never propagated past the store; callers see only the fallback path.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }
