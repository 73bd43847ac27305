package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigNotFound   ErrorCode = "CONFIG-001"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG-002"
	ErrCodeConfigUnmarshal  ErrorCode = "CONFIG-003"
	ErrCodeConfigEnvInvalid ErrorCode = "CONFIG-004"

	// Session store errors (STORE-001 to STORE-099)
	ErrCodeStoreReadFailed  ErrorCode = "STORE-001"
	ErrCodeStoreWriteFailed ErrorCode = "STORE-002"
	ErrCodeStoreClearFailed ErrorCode = "STORE-003"
	ErrCodeStoreCorrupt     ErrorCode = "STORE-004"

	// Authentication errors (AUTH-001 to AUTH-099)
	ErrCodeAuthFailed         ErrorCode = "AUTH-001"
	ErrCodeAuthInvalidInput   ErrorCode = "AUTH-002"
	ErrCodeAuthNotLoggedIn    ErrorCode = "AUTH-003"
	ErrCodeAuthPendingUser    ErrorCode = "AUTH-004"
	ErrCodeAuthSessionExpired ErrorCode = "AUTH-005"

	// API client errors (API-001 to API-099)
	ErrCodeAPIRequestFailed ErrorCode = "API-001"
	ErrCodeAPIUnauthorized  ErrorCode = "API-002"
	ErrCodeAPIUnexpected    ErrorCode = "API-003"
	ErrCodeAPITimeout       ErrorCode = "API-004"
	ErrCodeAPIDecodeFailed  ErrorCode = "API-005"

	// Session manager errors (SESSION-001 to SESSION-099)
	ErrCodeSessionBusy     ErrorCode = "SESSION-001"
	ErrCodeSessionNotReady ErrorCode = "SESSION-002"
)

// CallProError represents an enhanced error with code, suggestions, and field details
type CallProError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Fields      map[string]string
	Cause       error
}

// Error implements the error interface
func (e *CallProError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Fields) > 0 {
		names := make([]string, 0, len(e.Fields))
		for name := range e.Fields {
			names = append(names, name)
		}
		sort.Strings(names)
		b.WriteString("\n\nField errors:")
		for _, name := range names {
			b.WriteString(fmt.Sprintf("\n  • %s: %s", name, e.Fields[name]))
		}
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *CallProError) Unwrap() error {
	return e.Cause
}

// New creates a new CallProError
func New(code ErrorCode, message string) *CallProError {
	return &CallProError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new CallProError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *CallProError {
	return &CallProError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *CallProError) WithSuggestion(suggestion string) *CallProError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *CallProError) WithSuggestions(suggestions ...string) *CallProError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithField records a field-level validation failure on the error
func (e *CallProError) WithField(name, problem string) *CallProError {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[name] = problem
	return e
}

// Common error constructors for frequently used errors

// NewNotLoggedInError creates an error for operations requiring a session
func NewNotLoggedInError() *CallProError {
	return New(ErrCodeAuthNotLoggedIn, "not logged in").
		WithSuggestion("Run 'callctl auth login' to authenticate").
		WithSuggestion("Run 'callctl auth status' to inspect the current session")
}

// NewSessionExpiredError creates an error for sessions rejected by the backend
func NewSessionExpiredError(cause error) *CallProError {
	return Wrap(ErrCodeAuthSessionExpired, "session expired or revoked", cause).
		WithSuggestion("Run 'callctl auth login' to re-authenticate")
}

// NewConfigUnmarshalError creates a config parse error
func NewConfigUnmarshalError(path string, cause error) *CallProError {
	return Wrap(ErrCodeConfigUnmarshal, fmt.Sprintf("failed to parse config file: %s", path), cause).
		WithSuggestion("Check the YAML syntax of the file").
		WithSuggestion("Remove the file to fall back to defaults")
}

// NewStoreCorruptError creates an error for unreadable session records
func NewStoreCorruptError(path string, cause error) *CallProError {
	return Wrap(ErrCodeStoreCorrupt, fmt.Sprintf("session record is not readable: %s", path), cause).
		WithSuggestion("Run 'callctl auth logout' to discard the stored session").
		WithSuggestion("Login again to create a fresh session")
}
