// Package logger provides structured JSON logging and metrics tracking for bcmc-trips.
//
// Every log line is a single JSON object with a timestamp, level, message, optional
// structured fields and an optional error. Lines below the configured minimum level
// are discarded.
//
// Metrics tracking includes counters (incrementing values), gauges (point-in-time
// values) and timings (duration measurements aggregated as count/total/min/max).
// The server exposes a snapshot of the default metrics at /debug/metrics.
//
// Example usage:
//
//	logger.Info("Rendered report", logger.Fields{
//	    "trips": 42,
//	    "path":  "/",
//	})
//
//	logger.Error("Upstream fetch failed", logger.Fields{
//	    "url": "https://bcmc.ca/m/events/",
//	}, err)
//
//	logger.IncrCounter("http.requests")
//	logger.RecordTiming("upstream.fetch", duration)
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var severity = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel converts a level name such as "debug" or "WARN" to a Level.
// Unknown names return LevelInfo and false.
func ParseLevel(name string) (Level, bool) {
	lvl := Level(strings.ToUpper(strings.TrimSpace(name)))
	if lvl == "WARNING" {
		lvl = LevelWarn
	}
	if _, ok := severity[lvl]; !ok {
		return LevelInfo, false
	}
	return lvl, true
}

// Fields represents structured log fields
type Fields map[string]interface{}

// LogEntry represents a single log entry
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Logger writes structured log entries to an io.Writer. It is safe for
// concurrent use.
type Logger struct {
	mu       sync.Mutex
	minLevel Level
	output   io.Writer
	now      func() time.Time
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New(LevelInfo, os.Stdout)
)

// New creates a new logger with the specified minimum log level and output destination.
func New(level Level, output io.Writer) *Logger {
	if _, ok := severity[level]; !ok {
		level = LevelInfo
	}
	return &Logger{
		minLevel: level,
		output:   output,
		now:      time.Now,
	}
}

// SetDefault replaces the logger used by the package-level functions
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Default returns the logger used by the package-level functions
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// Enabled reports whether messages at level would be written
func (l *Logger) Enabled(level Level) bool {
	return severity[level] >= severity[l.minLevel]
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if !l.Enabled(level) {
		return
	}

	entry := LogEntry{
		Timestamp: l.now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Fields:    fields,
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)

	l.mu.Lock()
	defer l.mu.Unlock()

	if marshalErr != nil {
		// Unencodable field values still leave a readable line
		fmt.Fprintf(l.output, "[%s] %s: %s (marshal error: %v)\n", //nolint:errcheck
			entry.Timestamp, entry.Level, entry.Message, marshalErr)
		return
	}
	l.output.Write(append(data, '\n')) //nolint:errcheck
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs a warning, something worth a look that didn't stop the request.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs a failure with optional structured fields and the error itself.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) {
	Default().Debug(message, fields)
}

// Info logs an info message with the default logger
func Info(message string, fields Fields) {
	Default().Info(message, fields)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	Default().Warn(message, fields)
}

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) {
	Default().Error(message, fields, err)
}
