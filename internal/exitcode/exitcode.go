package exitcode

import (
	"errors"
	"net/http"
	"os"

	"github.com/grandcallpro/callctl/internal/api"
	cperrors "github.com/grandcallpro/callctl/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// AuthError indicates an authentication failure or missing session
	AuthError = 3

	// NetworkError indicates a network connectivity issue
	NetworkError = 4

	// ValidationError indicates the backend or client rejected the input
	ValidationError = 5

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}
	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var cpErr *cperrors.CallProError
	if errors.As(err, &cpErr) {
		switch cpErr.Code {
		case cperrors.ErrCodeAuthFailed,
			cperrors.ErrCodeAuthNotLoggedIn,
			cperrors.ErrCodeAuthPendingUser,
			cperrors.ErrCodeAuthSessionExpired,
			cperrors.ErrCodeAPIUnauthorized:
			return AuthError
		case cperrors.ErrCodeAuthInvalidInput:
			return ValidationError
		case cperrors.ErrCodeAPITimeout, cperrors.ErrCodeAPIRequestFailed:
			return NetworkError
		}
	}

	// Backend rejections that never passed through the taxonomy
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return AuthError
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return ValidationError
		}
	}

	return GeneralError
}

// Description returns a human-readable description of an exit code
func Description(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case ValidationError:
		return "Validation error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
