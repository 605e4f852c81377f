// Package logger provides a simple logging interface for devboot components.
// Packages log debug, info, warn, and error messages through it without
// depending on a specific logging implementation.
package logger

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// DebugEnv enables debug output when set to any non-empty value.
const DebugEnv = "DEVBOOT_DEBUG"

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// verbose forces debug output regardless of DEVBOOT_DEBUG (--verbose).
var verbose atomic.Bool

// SetVerbose turns debug output on for every env logger.
func SetVerbose(v bool) {
	verbose.Store(v)
}

func debugEnabled() bool {
	return verbose.Load() || os.Getenv(DebugEnv) != ""
}

// envLogger implements Logger and writes through the standard log package.
// Debug messages are only printed when DEVBOOT_DEBUG is set or verbose is on.
type envLogger struct {
	prefix string
}

// NewEnvLogger creates a logger that respects the DEVBOOT_DEBUG environment variable.
// The prefix is prepended to all log messages (e.g., "[ssh]" or "[gpg]").
func NewEnvLogger(prefix string) Logger {
	return &envLogger{prefix: prefix}
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	if debugEnabled() {
		log.Printf(l.prefix+" "+format, args...)
	}
}

func (l *envLogger) Info(format string, args ...interface{}) {
	log.Printf(l.prefix+" "+format, args...)
}

func (l *envLogger) Warn(format string, args ...interface{}) {
	log.Printf(l.prefix+" WARN: "+format, args...)
}

func (l *envLogger) Error(format string, args ...interface{}) {
	log.Printf(l.prefix+" ERROR: "+format, args...)
}

// noopLogger discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing.
type BufferLogger struct {
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) Debug(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "debug", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Info(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "info", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Warn(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "warn", Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Error(format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{Level: "error", Message: fmt.Sprintf(format, args...)})
}

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.Messages = l.Messages[:0]
}

var defaultLogger = NewEnvLogger("[devboot]")

// Default returns the package-level default logger.
func Default() Logger {
	return defaultLogger
}

// SetDefault replaces the package-level default logger.
func SetDefault(l Logger) {
	defaultLogger = l
}
