// Package apperror defines the application's error taxonomy.
//
// Services return these errors; the HTTP layer maps them to status codes.
// Keeping the taxonomy in one tiny package means every layer agrees on what
// "not found" or "conflict" means without importing net/http.
package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers check these with errors.Is, never with ==,
// because AppError wraps them.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
)

// AppError carries a sentinel plus a human-readable message.
type AppError struct {
	Err     error  // one of the sentinels above
	Message string // safe to show to the end user
	Field   string // optional: the offending field for validation errors
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing resource, e.g. NotFound("project", "abc123").
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// ValidationFailed reports malformed input on a specific field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports that a resource is already held by someone else.
// Used by the username claim when a reservation key already exists.
func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Forbidden reports an ownership or permission mismatch.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}
