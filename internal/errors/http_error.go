package errors

import (
	"errors"
	"net/http"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// Taxonomy used across the service layer.
var (
	NewValidation   = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
	NewNotFound     = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }
	NewConflict     = func(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, msg) }
	NewInvalidState = func(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, msg) }
	NewUpstream     = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadGateway, msg) }
	NewUnauthorized = func(msg string) *HTTPError { return NewHTTPError(http.StatusUnauthorized, msg) }
)

// StatusOf returns the HTTP status carried by err, or 500 when err is not an
// HTTPError.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}
