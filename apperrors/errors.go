// Package apperrors maps failures to the three kinds the API reports:
// bad requests, unreachable models and everything else.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	TypeValidation  ErrorType = "validation"
	TypeUnavailable ErrorType = "unavailable"
	TypeInternal    ErrorType = "internal"
)

// Error carries the kind of failure and, for model failures, which
// capability failed.
type Error struct {
	Type       ErrorType
	Message    string
	Capability string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message string) *Error {
	return &Error{Type: TypeValidation, Message: message}
}

// Unavailable reports that a model capability could not be used.
func Unavailable(capability string, cause error) *Error {
	return &Error{
		Type:       TypeUnavailable,
		Message:    capability + " model unavailable",
		Capability: capability,
		Cause:      cause,
	}
}

func Internal(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause}
}

// ErrorResponse is the JSON body written for a failed request.
type ErrorResponse struct {
	Error      string    `json:"error"`
	Type       ErrorType `json:"type"`
	Capability string    `json:"capability,omitempty"`
}

func (e *Error) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message, Type: e.Type, Capability: e.Capability}
}

// From converts any error into an *Error, defaulting to internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error", err)
}
