package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies application failures so the transport layer can map
// them to status codes without inspecting message text.
type ErrorCode string

const (
	ErrCodeValidation   ErrorCode = "validation"
	ErrCodeConflict     ErrorCode = "conflict"
	ErrCodeNotFound     ErrorCode = "not_found"
	ErrCodeInvalidState ErrorCode = "invalid_state"
	ErrCodeUnauthorized ErrorCode = "unauthorized"
	ErrCodeInternal     ErrorCode = "internal"
)

// Error is the typed failure surfaced by every workflow operation.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidationError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeConflict, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidStateError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidState, Message: fmt.Sprintf(format, args...)}
}

func NewUnauthorizedError(format string, args ...any) *Error {
	return &Error{Code: ErrCodeUnauthorized, Message: fmt.Sprintf(format, args...)}
}

// WrapInternal attaches an internal code to an unexpected error while
// preserving the cause for logging.
func WrapInternal(msg string, err error) *Error {
	return &Error{Code: ErrCodeInternal, Message: msg, Err: err}
}

// CodeOf extracts the application error code, defaulting to internal for
// untyped errors.
func CodeOf(err error) ErrorCode {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}
