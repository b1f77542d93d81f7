// Package errors carries the application error codes the HTTP layer
// reports.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

const (
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeValidation  = "VALIDATION_ERROR"
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeConflict    = "CONFLICT"
	ErrCodeUnavailable = "UNAVAILABLE"
)

// AppError is an error with an HTTP status and a stable code.
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// NewNotFoundError reports a missing resource.
func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewValidationError reports a field that failed validation.
func NewValidationError(field, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  http.StatusBadRequest,
	}
}

// NewInternalError hides err behind a generic message.
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewBadRequestError reports a malformed request.
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: ErrCodeBadRequest, Message: message, Status: http.StatusBadRequest}
}

// NewConflictError reports a request that does not fit the resource's
// current state, such as reading a report that is still running.
func NewConflictError(message string) *AppError {
	return &AppError{Code: ErrCodeConflict, Message: message, Status: http.StatusConflict}
}

// NewUnavailableError reports a full job queue or a closed store.
func NewUnavailableError(message string, err error) *AppError {
	return &AppError{Code: ErrCodeUnavailable, Message: message, Status: http.StatusServiceUnavailable, Err: err}
}

// As finds the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is forwards to the standard library.
func Is(err, target error) bool { return stderrors.Is(err, target) }
