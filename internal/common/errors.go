package common

import (
	"errors"
	"fmt"
	"strings"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	// ErrInvalidID marks an identifier that does not conform to the
	// store's id format; callers map this to a bad request, never a 404.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrNotFound marks a well-formed id with no matching record.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation marks a lifecycle rule rejection.
	ErrValidation = errors.New("validation failed")
	// ErrNotPending marks a delete attempted on a submitted request.
	ErrNotPending = errors.New("request is not pending")
	// ErrUnreadableDocument marks a stored byte payload in none of the
	// recognized representations.
	ErrUnreadableDocument = errors.New("stored document is not readable")
	// ErrUpstream marks a text-extraction or LLM failure; no partial
	// record is persisted when it is returned.
	ErrUpstream = errors.New("upstream extraction failed")
	// ErrDatabase marks a storage-layer failure.
	ErrDatabase = errors.New("database error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// ValidationError carries the field-scoped reasons a submit transition was
// rejected, so callers can render actionable feedback without re-deriving it.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// TransitionError rejects a status transition that the lifecycle rules do
// not allow, independent of field completeness.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s -> %s is not allowed", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrValidation
}
