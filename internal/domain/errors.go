package domain

import (
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"

	"uk_numcheck/pkg/errcodes"
)

// ErrDatasetUnavailable is returned by every read path until the first rule
// set has been published.
var ErrDatasetUnavailable = NewError(errcodes.DatasetUnavailable, "numbering plan not published yet")

// AppError is the application-level error carried between the domain and the
// transport boundary.
type AppError struct {
	Code    failure.ErrorCode
	Message string
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}

	return e.Message
}

// Unwrap exposes the wrapped error to errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.cause
}

func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// WrapError attaches a domain code and message to an underlying error.
func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   err,
	}
}

// GetCode extracts the error code if err is (or wraps) an AppError.
func GetCode(err error) (failure.ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}

	return "", false
}
