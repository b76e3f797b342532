package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation conflicts with the current state of
// the resource, e.g. a payment booked against a completed mortgage. Callers
// should refresh their view and retry the whole operation.
var ErrConflict = errors.New("conflict with current resource state")

// ErrForbidden indicates the acting user lacks the role required for the operation.
var ErrForbidden = errors.New("operation not permitted for this user")

// ErrInternal indicates an unexpected internal failure that should surface as a 500.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with an HTTP-ish status code and a
// human-readable message. Repositories use it to attach context to storage
// failures without leaking driver errors into handlers.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	// Map bare codes onto the sentinel taxonomy so errors.Is keeps working.
	switch e.Code {
	case 400:
		return ErrValidation
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	case 409:
		return ErrConflict
	default:
		return ErrInternal
	}
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that unwraps to ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
