package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeAuthFailed, "test error message")

	if err.Code != ErrCodeAuthFailed {
		t.Errorf("expected code %s, got %s", ErrCodeAuthFailed, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got %s", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected no cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying failure")
	err := Wrap(ErrCodeStoreReadFailed, "could not read session", cause)

	if err.Cause != cause {
		t.Errorf("expected cause to be preserved")
	}

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause through Unwrap")
	}
}

func TestErrorFormat(t *testing.T) {
	err := New(ErrCodeAuthInvalidInput, "invalid registration data").
		WithField("email", "must be a valid email address").
		WithField("password", "must be at least 8 characters").
		WithSuggestion("Fix the highlighted fields and retry")

	msg := err.Error()

	if !strings.Contains(msg, "[AUTH-002]") {
		t.Errorf("expected error code in message, got: %s", msg)
	}
	if !strings.Contains(msg, "Field errors:") {
		t.Errorf("expected field errors section, got: %s", msg)
	}
	if !strings.Contains(msg, "email: must be a valid email address") {
		t.Errorf("expected email field detail, got: %s", msg)
	}
	if !strings.Contains(msg, "Suggestions:") {
		t.Errorf("expected suggestions section, got: %s", msg)
	}

	// Field order is deterministic
	if strings.Index(msg, "email:") > strings.Index(msg, "password:") {
		t.Error("expected fields sorted by name")
	}
}

func TestCommonConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *CallProError
		code ErrorCode
	}{
		{"not logged in", NewNotLoggedInError(), ErrCodeAuthNotLoggedIn},
		{"session expired", NewSessionExpiredError(fmt.Errorf("401")), ErrCodeAuthSessionExpired},
		{"config unmarshal", NewConfigUnmarshalError("config.yaml", fmt.Errorf("bad yaml")), ErrCodeConfigUnmarshal},
		{"store corrupt", NewStoreCorruptError("session.json", fmt.Errorf("bad json")), ErrCodeStoreCorrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if len(tt.err.Suggestions) == 0 {
				t.Error("expected at least one suggestion")
			}
		})
	}
}
