package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel values for the error taxonomy. Every failure a workflow can
// surface to a caller wraps one of these, so callers can branch with
// errors.Is without inspecting status codes.
var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("resource conflict")
	ErrNotFound        = errors.New("not found")
	ErrNotAllowed      = errors.New("operation not allowed")
	ErrProtectedEntity = errors.New("protected entity")
	ErrUnauthorized    = errors.New("unauthorized")
)

var Unauthorized = &ApiErr{StatusCode: http.StatusUnauthorized, err: ErrUnauthorized}

type ApiErr struct {
	StatusCode int
	err        error
	Details    string // Additional details about the error
	Field      string // Field that caused the error (for validation errors)
	Cause      error  // The underlying cause of the error
}

func NewApiErr(statusCode int, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		err:        errors.New(message),
	}
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		if apiErr, ok := e.Cause.(*ApiErr); ok {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

// Taxonomy constructors with appropriate HTTP status codes.

func NewValidationError(field, reason string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrValidation,
		Details:    reason,
		Field:      field,
	}
}

func NewConflictError(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrConflict,
		Details:    message,
	}
}

func NewNotFoundError(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

func NewNotAllowedError(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrNotAllowed,
		Details:    message,
	}
}

func NewProtectedEntityError(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusForbidden,
		err:        ErrProtectedEntity,
		Details:    message,
	}
}

func NewBadRequestError(message string) *ApiErr {
	return NewApiErr(http.StatusBadRequest, message)
}

func NewInternalError(message string) *ApiErr {
	return NewApiErr(http.StatusInternalServerError, message)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsNotAllowed(err error) bool {
	return errors.Is(err, ErrNotAllowed)
}

func IsProtectedEntity(err error) bool {
	return errors.Is(err, ErrProtectedEntity)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
