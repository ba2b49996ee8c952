package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func parseEntry(t *testing.T, line string) Entry {
	t.Helper()
	var entry Entry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("failed to parse log entry %q: %v", line, err)
	}
	return entry
}

func TestLogger_Info(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf, MinLevel: LevelInfo})

	l.Info("movie imported")

	entry := parseEntry(t, buf.String())
	if entry.Level != LevelInfo {
		t.Errorf("expected level INFO, got %s", entry.Level)
	}
	if entry.Message != "movie imported" {
		t.Errorf("unexpected message '%s'", entry.Message)
	}
	if entry.Timestamp == "" {
		t.Error("expected timestamp to be set")
	}
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf, MinLevel: LevelInfo})

	l.Error("import failed", errors.New("connection reset"))

	entry := parseEntry(t, buf.String())
	if entry.Level != LevelError {
		t.Errorf("expected level ERROR, got %s", entry.Level)
	}
	if entry.Error != "connection reset" {
		t.Errorf("unexpected error field '%s'", entry.Error)
	}
}

func TestLogger_MinLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf, MinLevel: LevelWarn})

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d", len(lines))
	}

	entry := parseEntry(t, lines[0])
	if entry.Level != LevelWarn {
		t.Errorf("expected only WARN to pass the filter, got %s", entry.Level)
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf, MinLevel: LevelInfo})

	l.WithFields(map[string]interface{}{
		"movie_id": 603,
		"page":     2,
	}).Info("processing candidate")

	entry := parseEntry(t, buf.String())
	if entry.Context["movie_id"] != float64(603) {
		t.Errorf("expected movie_id 603 in context, got %v", entry.Context["movie_id"])
	}
	if entry.Context["page"] != float64(2) {
		t.Errorf("expected page 2 in context, got %v", entry.Context["page"])
	}
}

func TestLogger_RequestIDFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf, MinLevel: LevelInfo})

	ctx := ContextWithRequestID(context.Background(), "req-123")
	l.InfoContext(ctx, "handling request")

	entry := parseEntry(t, buf.String())
	if entry.Context["request_id"] != "req-123" {
		t.Errorf("expected request_id 'req-123', got %v", entry.Context["request_id"])
	}
}

func TestLogger_StackOnError(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Output: &buf, MinLevel: LevelDebug, WithStack: true})

	l.Error("something broke", errors.New("boom"))

	entry := parseEntry(t, buf.String())
	if len(entry.Stack) == 0 {
		t.Error("expected stack trace on error with WithStack enabled")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.expected {
			t.Errorf("parseLevel(%q) = %s, want %s", tt.input, got, tt.expected)
		}
	}
}

func TestInitializeLoggers(t *testing.T) {
	InitializeLoggers("debug", "warn")

	if AppLogger().minLevel != LevelDebug {
		t.Errorf("expected app logger at DEBUG, got %s", AppLogger().minLevel)
	}
	if DatabaseLogger().minLevel != LevelWarn {
		t.Errorf("expected database logger at WARN, got %s", DatabaseLogger().minLevel)
	}
}
