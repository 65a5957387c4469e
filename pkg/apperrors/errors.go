package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
)

// AppError is an error that knows the HTTP response it should become.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // cause, logged but never sent
	Stack      string `json:"-"`
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

// WithDetail adds detail to the error
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// --- Error constructors ---

// newAppError builds an AppError. Only server errors carry a stack, since
// client errors are never logged above debug level.
func newAppError(status int, code, message string, err error) *AppError {
	appErr := &AppError{
		Code:       code,
		Message:    message,
		Err:        err,
		HTTPStatus: status,
	}
	if status >= http.StatusInternalServerError {
		appErr.Stack = getStack()
	}
	return appErr
}

// NewBadRequest creates a 400 Bad Request error
func NewBadRequest(code, message string) *AppError {
	return newAppError(http.StatusBadRequest, code, message, nil)
}

// NewUnauthorized creates a 401 Unauthorized error
func NewUnauthorized(code, message string) *AppError {
	return newAppError(http.StatusUnauthorized, code, message, nil)
}

// NewForbidden creates a 403 Forbidden error
func NewForbidden(code, message string) *AppError {
	return newAppError(http.StatusForbidden, code, message, nil)
}

// NewNotFound creates a 404 Not Found error
func NewNotFound(code, message string) *AppError {
	return newAppError(http.StatusNotFound, code, message, nil)
}

// NewInternal creates a 500 Internal Server Error
func NewInternal(code, message string, err error) *AppError {
	return newAppError(http.StatusInternalServerError, code, message, err)
}

// getStack captures the current stack trace
func getStack() string {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	return string(buf[:n])
}

// AsAppError attempts to convert an error to AppError, looking through wrapping.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
