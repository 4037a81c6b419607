package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrValidation
	ErrUnavailable
	ErrCorruptState
)

// Error constructors
func NewNotFound(message string, err error) *AppError {
	if message == "" {
		message = "not found"
	}
	return &AppError{
		Code:    ErrNotFound,
		Message: message,
		Err:     err,
	}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// NewAuth marks a failed credential check or a rejected/expired session.
func NewAuth(message string, err error) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{
		Code:    ErrUnauthorized,
		Message: message,
		Err:     err,
	}
}

// NewForbidden marks an authenticated but unauthorized action.
func NewForbidden(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return &AppError{
		Code:    ErrForbidden,
		Message: message,
	}
}

// NewNetwork marks a request that failed before a usable response arrived.
func NewNetwork(message string, err error) *AppError {
	if message == "" {
		message = "upstream request failed"
	}
	return &AppError{
		Code:    ErrUnavailable,
		Message: message,
		Err:     err,
	}
}

// NewValidation marks input rejected locally, before any upstream call.
func NewValidation(message string, err error) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
		Err:     err,
	}
}

// NewCorruptState marks locally persisted state that failed to parse.
func NewCorruptState(key string, err error) *AppError {
	return &AppError{
		Code:    ErrCorruptState,
		Message: fmt.Sprintf("corrupt local state for %q", key),
		Err:     err,
	}
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func IsAuth(err error) bool         { return IsCode(err, ErrUnauthorized) }
func IsNetwork(err error) bool      { return IsCode(err, ErrUnavailable) }
func IsValidation(err error) bool   { return IsCode(err, ErrValidation) }
func IsCorruptState(err error) bool { return IsCode(err, ErrCorruptState) }
func IsNotFound(err error) bool     { return IsCode(err, ErrNotFound) }
