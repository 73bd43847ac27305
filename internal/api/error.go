package api

import (
	"errors"
	"fmt"
	"net/http"
)

// errorResponse is the backend's JSON error envelope
type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Fields  map[string]string `json:"fields"`
}

// Error represents a non-2xx response from the backend.
//
// Fields carries structured field-level validation errors when the backend
// returns them; callers display those inline and must not treat them as a
// session problem.
type Error struct {
	Status  int
	Code    string
	Message string
	Fields  map[string]string
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s (%s, status %d)", msg, e.Code, e.Status)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.Status)
}

// IsUnauthorized reports whether err is a 401 response
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsValidation reports whether err carries field-level validation details
func IsValidation(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && len(apiErr.Fields) > 0
}

// StatusOf returns the HTTP status of err, or 0 when err is not an API error
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
