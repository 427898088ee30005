// ============================================================================
// meinSTIMMWERK (mSW) - Lokales Stimm-Labor
// ============================================================================
//
// Package:     logging
// Description: Structured logging with text and JSON output
// Author:      Mike Stoffels with Claude
// Created:     2026-08-25
// License:     MIT
// ============================================================================

package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Fields holds contextual key/value pairs for a log entry
type Fields map[string]interface{}

// Logger is a leveled, structured logger. All methods are safe for
// concurrent use.
type Logger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
	name   string
	format string // "text" or "json"
	fields Fields
}

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Name appears in every entry (usually the tool or component name)
	Name string

	// Level is the minimum severity that is written (debug, info, warn, error)
	Level string

	// Format selects the output format: "text" (default) or "json"
	Format string

	// Output defaults to stderr so log lines do not mix with tool output
	Output io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "info",
		Format: "text",
	}
}

// NewLogger creates a new logger from the given configuration
func NewLogger(cfg LoggerConfig) *Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	format := cfg.Format
	if format != "json" {
		format = "text"
	}

	return &Logger{
		level:  ParseLevel(cfg.Level),
		output: output,
		name:   cfg.Name,
		format: format,
		fields: make(Fields),
	}
}

// NewSimpleLogger creates a text logger with default settings
func NewSimpleLogger(name string) *Logger {
	return NewLogger(DefaultLoggerConfig(name))
}

// WithField returns a copy of the logger with an additional context field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(Fields{key: value})
}

// WithFields returns a copy of the logger with additional context fields
func (l *Logger) WithFields(fields Fields) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	clone := &Logger{
		level:  l.level,
		output: l.output,
		name:   l.name,
		format: l.format,
		fields: make(Fields, len(l.fields)+len(fields)),
	}
	for k, v := range l.fields {
		clone.fields[k] = v
	}
	for k, v := range fields {
		clone.fields[k] = v
	}
	return clone
}

// SetLevel changes the minimum log level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Debug logs a message at debug level
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, fields...)
}

// Info logs a message at info level
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, fields...)
}

// Warn logs a message at warn level
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, fields...)
}

// Error logs a message at error level
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, fields...)
}

// ErrorWithErr logs a message with an attached error
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields...)
}

func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	merged := make(Fields, len(l.fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for _, f := range fields {
		for k, v := range f {
			merged[k] = v
		}
	}
	if err != nil {
		merged["error"] = err.Error()
	}

	now := time.Now()
	if l.format == "json" {
		l.writeJSON(now, level, message, merged)
	} else {
		l.writeText(now, level, message, merged)
	}
}

func (l *Logger) writeText(ts time.Time, level Level, message string, fields Fields) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%-5s]", ts.Format("2006-01-02 15:04:05"), strings.ToUpper(level.String()))
	if l.name != "" {
		fmt.Fprintf(&b, " %s:", l.name)
	}
	fmt.Fprintf(&b, " %s", message)

	// Deterministic field order keeps the output diffable
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	b.WriteByte('\n')

	l.output.Write([]byte(b.String()))
}

func (l *Logger) writeJSON(ts time.Time, level Level, message string, fields Fields) {
	entry := make(map[string]interface{}, len(fields)+4)
	entry["timestamp"] = ts.Format(time.RFC3339)
	entry["level"] = level.String()
	entry["message"] = message
	if l.name != "" {
		entry["logger"] = l.name
	}
	for k, v := range fields {
		entry[k] = v
	}

	data, err := json.Marshal(entry)
	if err != nil {
		// Fall back to text so the entry is not lost
		l.writeText(ts, level, message, fields)
		return
	}
	l.output.Write(append(data, '\n'))
}
