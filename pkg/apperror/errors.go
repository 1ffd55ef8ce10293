package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap returns the error the AppError was built from, if any
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is matches AppErrors by code and message so wrapped sentinels compare equal
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// Common errors
var (
	ErrTooManyRequests      = &AppError{Code: http.StatusTooManyRequests, Message: "Rate limit exceeded. Please try again later."}
	ErrUnknownField         = &AppError{Code: http.StatusBadRequest, Message: "Unknown order field"}
	ErrItemOutOfRange       = &AppError{Code: http.StatusBadRequest, Message: "Item index out of range"}
	ErrSubmissionInProgress = &AppError{Code: http.StatusConflict, Message: "A submission is already in progress"}
	ErrSessionNotFound      = &AppError{Code: http.StatusNotFound, Message: "Form session not found"}
)

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// NewBadGatewayError wraps a failure of the upstream WMS. The message is the
// upstream failure's own message.
func NewBadGatewayError(cause error) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Message: cause.Error(),
		cause:   cause,
	}
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		cause:   err,
	}
}
