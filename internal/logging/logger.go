// Package logging provides the leveled, structured logger used by partsplit.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level represents the severity of a log message.
type Level int

const (
	// LevelDebug for detailed debugging information
	LevelDebug Level = iota
	// LevelInfo for per-chunk progress and run summaries
	LevelInfo
	// LevelWarn for conditions that do not stop a split
	LevelWarn
	// LevelError for fatal split errors
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name (case-insensitive) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %q", s)
	}
}

// Logger is the interface for logging in partsplit.
// Callers can implement it to route split progress into their own system.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a structured logging field.
type Field struct {
	Key   string
	Value interface{}
}

// F is a convenience function to create a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// NoopLogger is a logger that does nothing.
type NoopLogger struct{}

// Debug implements Logger.
func (NoopLogger) Debug(string, ...Field) {}

// Info implements Logger.
func (NoopLogger) Info(string, ...Field) {}

// Warn implements Logger.
func (NoopLogger) Warn(string, ...Field) {}

// Error implements Logger.
func (NoopLogger) Error(string, ...Field) {}

// DefaultLogger writes "[LEVEL] msg key=value ..." lines through the standard log package.
type DefaultLogger struct {
	minLevel Level
	logger   *log.Logger
	fields   []Field
}

// NewDefaultLogger creates a logger writing to stderr at the given minimum level.
func NewDefaultLogger(minLevel Level) *DefaultLogger {
	return NewWriterLogger(os.Stderr, minLevel)
}

// NewWriterLogger creates a logger writing to w at the given minimum level.
func NewWriterLogger(w io.Writer, minLevel Level) *DefaultLogger {
	return &DefaultLogger{
		minLevel: minLevel,
		logger:   log.New(w, "", log.LstdFlags),
	}
}

// With returns a logger that prepends fields to every message.
func (l *DefaultLogger) With(fields ...Field) *DefaultLogger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &DefaultLogger{minLevel: l.minLevel, logger: l.logger, fields: merged}
}

// Debug implements Logger.
func (l *DefaultLogger) Debug(msg string, fields ...Field) {
	l.log(LevelDebug, msg, fields)
}

// Info implements Logger.
func (l *DefaultLogger) Info(msg string, fields ...Field) {
	l.log(LevelInfo, msg, fields)
}

// Warn implements Logger.
func (l *DefaultLogger) Warn(msg string, fields ...Field) {
	l.log(LevelWarn, msg, fields)
}

// Error implements Logger.
func (l *DefaultLogger) Error(msg string, fields ...Field) {
	l.log(LevelError, msg, fields)
}

func (l *DefaultLogger) log(level Level, msg string, fields []Field) {
	if level < l.minLevel {
		return
	}

	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(level.String())
	sb.WriteString("] ")
	sb.WriteString(msg)

	for _, group := range [][]Field{l.fields, fields} {
		for _, f := range group {
			sb.WriteString(" ")
			sb.WriteString(f.Key)
			sb.WriteString("=")
			switch v := f.Value.(type) {
			case string:
				sb.WriteString(v)
			default:
				sb.WriteString(fmt.Sprint(v))
			}
		}
	}

	l.logger.Print(sb.String())
}
