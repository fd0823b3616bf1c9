// Package logger provides leveled, structured logging for retidy.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// Level represents the severity level of log messages
type Level int

const (
	TraceLevel Level = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a flag value to a Level, defaulting to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "trace":
		return TraceLevel
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Config holds the logger configuration
type Config struct {
	Level     Level
	UseColor  bool
	JSON      bool
	Component string
	DryRun    bool
}

// Logger represents the logger instance
type Logger struct {
	config Config
	logger *log.Logger
}

// Default logger instance
var defaultLogger *Logger

// Initialize sets up the default logger
func Initialize(config Config) error {
	defaultLogger = &Logger{
		config: config,
		logger: log.New(os.Stderr, "", 0),
	}
	return nil
}

// Log writes a log message
func (l *Logger) Log(level Level, message string, fields ...Field) {
	if level < l.config.Level {
		return
	}

	entry := logEntry{
		Time:      time.Now(),
		Level:     level.String(),
		Message:   message,
		Component: l.config.Component,
	}
	if len(fields) > 0 {
		entry.Fields = make(map[string]interface{}, len(fields))
		for _, field := range fields {
			entry.Fields[field.Key] = field.Value
		}
	}

	var output string
	if l.config.JSON {
		jsonBytes, _ := json.Marshal(entry)
		output = string(jsonBytes)
	} else {
		output = l.formatPretty(entry)
	}

	l.logger.Print(output)
}

// formatPretty formats the log entry in a human-readable way
func (l *Logger) formatPretty(entry logEntry) string {
	var builder strings.Builder

	builder.WriteString(entry.Time.Format("2006-01-02 15:04:05"))

	level := entry.Level
	if l.config.UseColor {
		switch entry.Level {
		case "TRACE":
			level = "\033[37mTRACE\033[0m"
		case "DEBUG":
			level = "\033[36mDEBUG\033[0m"
		case "INFO":
			level = "\033[32mINFO\033[0m"
		case "WARN":
			level = "\033[33mWARN\033[0m"
		case "ERROR":
			level = "\033[31mERROR\033[0m"
		}
	}
	builder.WriteString(fmt.Sprintf(" [%s]", level))

	if entry.Component != "" {
		builder.WriteString(fmt.Sprintf(" %s:", entry.Component))
	}

	// Dry-run marker so planning-only output is unmistakable in logs
	if l.config.DryRun {
		if l.config.UseColor {
			builder.WriteString(" \033[35m[DRY-RUN]\033[0m")
		} else {
			builder.WriteString(" [DRY-RUN]")
		}
	}

	builder.WriteString(fmt.Sprintf(" %s", entry.Message))

	if len(entry.Fields) > 0 {
		builder.WriteString(" {")
		first := true
		for k, v := range entry.Fields {
			if !first {
				builder.WriteString(", ")
			}
			builder.WriteString(fmt.Sprintf("%s=%v", k, v))
			first = false
		}
		builder.WriteString("}")
	}

	return builder.String()
}

// Field represents a structured field in a log entry
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field
func Err(err error) Field {
	return Field{Key: "error", Value: err.Error()}
}

type logEntry struct {
	Time      time.Time              `json:"time"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Component string                 `json:"component,omitempty"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// Convenience functions for default logger
func Trace(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(TraceLevel, message, fields...)
	}
}

func Debug(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(DebugLevel, message, fields...)
	}
}

func Info(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(InfoLevel, message, fields...)
	} else {
		fmt.Fprintf(os.Stderr, "[INFO] retidy: %s\n", message)
	}
}

func Warn(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(WarnLevel, message, fields...)
	}
}

func Error(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(ErrorLevel, message, fields...)
	}
}

// SetOutput sets the output writer for the logger
func SetOutput(w io.Writer) {
	if defaultLogger != nil {
		defaultLogger.logger.SetOutput(w)
	}
}
