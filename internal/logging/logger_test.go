package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, data string) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(data), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("failed to parse log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestNewLogger(t *testing.T) {
	t.Run("creates log file in directory", func(t *testing.T) {
		dir := t.TempDir()

		logger, err := NewLogger(dir, LevelDebug, DefaultRotationConfig())
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		defer logger.Close()

		if _, err := os.Stat(filepath.Join(dir, FileName)); os.IsNotExist(err) {
			t.Errorf("log file was not created in %s", dir)
		}
	})

	t.Run("writes to stderr when dir is empty", func(t *testing.T) {
		logger, err := NewLogger("", LevelInfo, DefaultRotationConfig())
		if err != nil {
			t.Fatalf("NewLogger failed: %v", err)
		}
		if logger.writer != nil {
			t.Error("expected no file writer when dir is empty")
		}
		if err := logger.Close(); err != nil {
			t.Errorf("Close() = %v, want nil", err)
		}
	})
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, LevelWarn, nil)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message", "key", "value")
	logger.Error("error message")

	entries := decodeLines(t, buf.String())
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries at WARN, got %d", len(entries))
	}
	if entries[0]["msg"] != "warn message" || entries[0]["key"] != "value" {
		t.Errorf("unexpected first entry: %v", entries[0])
	}
	if entries[1]["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", entries[1]["level"])
	}
}

func TestWithAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, LevelDebug, nil)

	child := logger.WithDocument("menu.html").WithContainer("#menu").With("pass", 3)
	child.Info("search pass")
	logger.Info("root entry")

	entries := decodeLines(t, buf.String())
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	first := entries[0]
	if first["document"] != "menu.html" {
		t.Errorf("document = %v, want menu.html", first["document"])
	}
	if first["container"] != "#menu" {
		t.Errorf("container = %v, want #menu", first["container"])
	}
	if first["pass"] != float64(3) {
		t.Errorf("pass = %v, want 3", first["pass"])
	}

	if _, ok := entries[1]["document"]; ok {
		t.Error("parent logger should not inherit child attributes")
	}
}

func TestWith_IgnoresBadPairs(t *testing.T) {
	logger := NopLogger()
	if got := logger.With("lonely"); got != logger {
		t.Error("With with a single arg should return the same logger")
	}

	child := logger.With(42, "value", "ok", true)
	if len(child.attrs) != 1 {
		t.Errorf("expected 1 attr, got %d", len(child.attrs))
	}
}

func TestEnabled(t *testing.T) {
	logger := NewLoggerWithWriter(&bytes.Buffer{}, LevelInfo, nil)
	if logger.Enabled(LevelDebug) {
		t.Error("DEBUG should be disabled at INFO")
	}
	if !logger.Enabled("warn") {
		t.Error("WARN should be enabled at INFO")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"Warn", LevelWarn},
		{"error", LevelError},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if len(ValidLevels()) != 4 {
		t.Errorf("ValidLevels() returned %d levels, want 4", len(ValidLevels()))
	}
}

func TestClose_Idempotent(t *testing.T) {
	logger, err := NewLogger(t.TempDir(), LevelInfo, DefaultRotationConfig())
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	logger.Info("hello")

	if err := logger.Close(); err != nil {
		t.Fatalf("first Close() = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("second Close() = %v", err)
	}
}
