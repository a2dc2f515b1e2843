package logging

import (
	"log/slog"
	"strings"
	"testing"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var b strings.Builder
	logger := NewWithWriter(&b, "json", slog.LevelInfo)
	logger.Info("hello", "key", "value")

	out := b.String()
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Errorf("JSON output %q misses msg", out)
	}
	if !strings.Contains(out, `"key":"value"`) {
		t.Errorf("JSON output %q misses attr", out)
	}
}

func TestNewWithWriter_TextDefault(t *testing.T) {
	var b strings.Builder
	logger := NewWithWriter(&b, "something-else", slog.LevelInfo)
	logger.Info("hello")

	if !strings.Contains(b.String(), "msg=hello") {
		t.Errorf("text output %q misses msg", b.String())
	}
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var b strings.Builder
	logger := NewWithWriter(&b, "text", slog.LevelWarn)
	logger.Info("dropped")
	logger.Warn("kept")

	out := b.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info line not filtered: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tc := range testCases {
		if got := parseLevel(tc.input); got != tc.expected {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.input, got, tc.expected)
		}
	}
}
