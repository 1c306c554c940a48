package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error types.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrBadRequest         = errors.New("bad request")
	ErrValidation         = errors.New("validation failed")
	ErrParse              = errors.New("parse failed")
	ErrInvalidInstallment = errors.New("invalid installment number")
	ErrUnhandledStatus    = errors.New("unhandled status")
	ErrConflict           = errors.New("resource conflict")
	ErrInternal           = errors.New("internal error")
)

// AppError represents an application error with HTTP status and error code.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrorResponse represents the JSON error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewAppError creates a new application error.
func NewAppError(code string, message string, statusCode int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

// Common error constructors.

// NotFound creates a not found error.
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
		Err:        ErrNotFound,
	}
}

// BadRequest creates a bad request error.
func BadRequest(message string) *AppError {
	return &AppError{
		Code:       "BAD_REQUEST",
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Err:        ErrBadRequest,
	}
}

// Validation creates a validation error. Construction-time invariant
// violations (invalid status tag, negative amount) use this.
func Validation(message string) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Err:        ErrValidation,
	}
}

// Parse creates a parse error naming the offending field. Malformed dates
// and unknown variant selectors in factory input use this.
func Parse(field string, err error) *AppError {
	return &AppError{
		Code:       "PARSE_ERROR",
		Message:    fmt.Sprintf("cannot parse field %q", field),
		StatusCode: http.StatusBadRequest,
		Err:        fmt.Errorf("%w: %w", ErrParse, err),
	}
}

// InvalidInstallment creates an invalid installment error. The whole
// payment batch is rejected when any entry carries an installment count
// that matches no entry in the installment table.
func InvalidInstallment(times int) *AppError {
	return &AppError{
		Code:       "INVALID_INSTALLMENT",
		Message:    fmt.Sprintf("installment number %d is not available", times),
		StatusCode: http.StatusUnprocessableEntity,
		Err:        ErrInvalidInstallment,
	}
}

// UnhandledStatus creates an unhandled status error. Response-handler
// dispatch has no catch-all arm; unknown tags must surface.
func UnhandledStatus(status string) *AppError {
	return &AppError{
		Code:       "UNHANDLED_STATUS",
		Message:    fmt.Sprintf("no handler registered for status %q", status),
		StatusCode: http.StatusInternalServerError,
		Err:        ErrUnhandledStatus,
	}
}

// Conflict creates a conflict error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    message,
		StatusCode: http.StatusConflict,
		Err:        ErrConflict,
	}
}

// Internal creates an internal error.
func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToResponse converts an AppError to ErrorResponse.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    e.Code,
			Message: e.Message,
		},
	}
}

// GetStatusCode returns the appropriate HTTP status code for an error.
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrParse):
		return http.StatusBadRequest
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidInstallment):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
