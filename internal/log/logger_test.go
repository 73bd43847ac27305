package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/grandcallpro/callctl/internal/errors"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"garbage", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelInfo,
		Format: FormatJSON,
		Output: NewOutput(&buf),
	})

	logger.Info("login succeeded", "user", "ana")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON log entry: %v", err)
	}

	if entry["msg"] != "login succeeded" {
		t.Errorf("expected msg 'login succeeded', got %v", entry["msg"])
	}
	if entry["user"] != "ana" {
		t.Errorf("expected user attribute, got %v", entry["user"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelWarn,
		Format: FormatText,
		Output: NewOutput(&buf),
	})

	logger.Debug("hidden")
	logger.Info("also hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug/info filtered out, got: %s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("expected warn message present, got: %s", out)
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  LevelInfo,
		Format: FormatJSON,
		Output: NewOutput(&buf),
	})

	err := errors.New(errors.ErrCodeAuthFailed, "bad credentials").
		WithSuggestion("check your password")
	logger.WithError(err).Error("login rejected")

	out := buf.String()
	if !strings.Contains(out, "AUTH-001") {
		t.Errorf("expected error code in log output, got: %s", out)
	}
	if !strings.Contains(out, "bad credentials") {
		t.Errorf("expected error message in log output, got: %s", out)
	}
}

func TestGetDefaultIsStable(t *testing.T) {
	a := GetDefault()
	b := GetDefault()
	if a != b {
		t.Error("expected GetDefault to return the same logger")
	}
}
