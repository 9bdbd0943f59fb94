package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrAlreadyExists  = errors.New("resource already exists")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrDeadlineClosed = errors.New("registration closed")
	ErrInternal       = errors.New("internal error")
)

// Error codes exposed to API clients
const (
	CodeValidation     = "validation_error"
	CodeConflict       = "conflict_error"
	CodeDeadlineClosed = "deadline_closed"
	CodeNotFound       = "not_found"
	CodeUnauthorized   = "unauthorized"
	CodeInternalError  = "internal_error"
)

// GenericServerMessage is the only message callers see for internal failures.
const GenericServerMessage = "服务器错误，请稍后重试"

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidation, message, ErrInvalidInput)
}

// Conflict is a client-fixable uniqueness failure. It is reported as 400 like
// every other rejected form field.
func Conflict(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeConflict, message, ErrAlreadyExists)
}

func DeadlineClosed(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodeDeadlineClosed, message, ErrDeadlineClosed)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

// InternalError hides err behind the generic message; err is kept for logging.
func InternalError(err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return NewAppError(http.StatusInternalServerError, CodeInternalError, GenericServerMessage, err)
}

// AsAppError converts any error into an *AppError, defaulting to internal_error.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError(err)
}
