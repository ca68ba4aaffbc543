// Package log provides a small structured logger for airdock components.
package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents the severity level of a log message.
type Level int

// Log levels
const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
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

// ParseLevel converts a level name to a Level. Unknown names map to InfoLevel.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger is the logging interface used by airdock components.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithComponent returns a logger that tags every entry with a component name.
	WithComponent(component string) Logger

	// SetLevel changes the minimum level this logger emits.
	SetLevel(level Level)
}

type baseLogger struct {
	mu        *sync.Mutex
	out       io.Writer
	level     Level
	component string
}

// NewLogger returns a logger writing human-readable lines to stderr.
// The level defaults to InfoLevel, or AIRDOCK_LOG_LEVEL when set.
func NewLogger() Logger {
	level := InfoLevel
	if v, ok := os.LookupEnv("AIRDOCK_LOG_LEVEL"); ok {
		level = ParseLevel(v)
	}
	return &baseLogger{
		mu:    &sync.Mutex{},
		out:   os.Stderr,
		level: level,
	}
}

// NewTestLogger returns a logger writing to the given writer at debug level.
func NewTestLogger(w io.Writer) Logger {
	return &baseLogger{
		mu:    &sync.Mutex{},
		out:   w,
		level: DebugLevel,
	}
}

var (
	defaultLogger     Logger
	defaultLoggerOnce sync.Once
)

// GetDefaultLogger returns the process-wide logger.
func GetDefaultLogger() Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = NewLogger()
	})
	return defaultLogger
}

func (l *baseLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields) }
func (l *baseLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields) }
func (l *baseLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields) }
func (l *baseLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields) }

func (l *baseLogger) WithComponent(component string) Logger {
	return &baseLogger{
		mu:        l.mu,
		out:       l.out,
		level:     l.level,
		component: component,
	}
}

func (l *baseLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *baseLogger) log(level Level, msg string, fields []Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02T15:04:05.000Z07:00"))
	b.WriteString(" [")
	b.WriteString(level.String())
	b.WriteString("]")
	if l.component != "" {
		b.WriteString(" (")
		b.WriteString(l.component)
		b.WriteString(")")
	}
	b.WriteString(" ")
	b.WriteString(msg)

	if len(fields) > 0 {
		// Stable field order keeps output diffable in tests.
		sorted := make([]Field, len(fields))
		copy(sorted, fields)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
		for _, f := range sorted {
			b.WriteString(" ")
			b.WriteString(f.Key)
			b.WriteString("=")
			b.WriteString(fmt.Sprintf("%v", f.Value))
		}
	}

	fmt.Fprintln(l.out, b.String())
}
