package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"ERROR", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLevel_String(t *testing.T) {
	if LevelDebug.String() != "debug" {
		t.Errorf("LevelDebug.String() = %v, want debug", LevelDebug.String())
	}
	if Level(99).String() != "unknown" {
		t.Errorf("Level(99).String() = %v, want unknown", Level(99).String())
	}
}

func TestLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Name: "test", Level: "debug", Output: &buf})

	logger.Info("hello", Fields{"voice": "af_sarah"})

	out := buf.String()
	if !strings.Contains(out, "[INFO ]") {
		t.Errorf("output missing level marker: %q", out)
	}
	if !strings.Contains(out, "test: hello") {
		t.Errorf("output missing name and message: %q", out)
	}
	if !strings.Contains(out, "voice=af_sarah") {
		t.Errorf("output missing field: %q", out)
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Name: "test", Level: "info", Format: "json", Output: &buf})

	logger.Warn("careful", Fields{"factor": 2.0})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["level"] != "warn" {
		t.Errorf("level = %v, want warn", entry["level"])
	}
	if entry["message"] != "careful" {
		t.Errorf("message = %v, want careful", entry["message"])
	}
	if entry["factor"] != 2.0 {
		t.Errorf("factor = %v, want 2", entry["factor"])
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: "warn", Output: &buf})

	logger.Debug("suppressed")
	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("below-level entries were written: %q", buf.String())
	}

	logger.Error("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("error entry missing: %q", buf.String())
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(LoggerConfig{Level: "debug", Output: &buf})
	scoped := base.WithFields(Fields{"run_id": "abc"}).WithField("group", "source")

	scoped.Info("resolving")

	out := buf.String()
	if !strings.Contains(out, "run_id=abc") || !strings.Contains(out, "group=source") {
		t.Errorf("context fields missing: %q", out)
	}

	// The base logger must not inherit the scoped fields
	buf.Reset()
	base.Info("plain")
	if strings.Contains(buf.String(), "run_id") {
		t.Errorf("base logger polluted by WithFields: %q", buf.String())
	}
}

func TestLogger_ErrorWithErr(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: "debug", Output: &buf})

	logger.ErrorWithErr("decode failed", errTest)

	if !strings.Contains(buf.String(), "error=boom") {
		t.Errorf("attached error missing: %q", buf.String())
	}
}

var errTest = errStr("boom")

type errStr string

func (e errStr) Error() string { return string(e) }
