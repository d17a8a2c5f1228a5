// Package logger provides structured logging for mcfcomplete.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Output formats accepted by NewWithFormat
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Logger wraps logrus logger
type Logger struct {
	log    *logrus.Logger
	fields logrus.Fields
}

// Entry wraps logrus entry for method chaining
type Entry struct {
	entry *logrus.Entry
}

// New creates a new logger writing colored text, the format used by
// interactive commands.
func New(level string, output io.Writer) *Logger {
	return NewWithFormat(level, output, FormatText)
}

// NewWithFormat creates a logger with an explicit output format. The HTTP
// server logs JSON so request logs can be shipped as-is.
func NewWithFormat(level string, output io.Writer, format string) *Logger {
	if output == nil {
		output = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(output)

	logLevel, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	log.SetLevel(logLevel)

	switch strings.ToLower(format) {
	case FormatJSON:
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			ForceColors:      true,
			DisableTimestamp: true,
			PadLevelText:     true,
		})
	}

	return &Logger{log: log, fields: logrus.Fields{}}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New("panic", io.Discard)
}

// Component returns a child logger that tags every entry with the
// component name.
func (l *Logger) Component(name string) *Logger {
	fields := make(logrus.Fields, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields["component"] = name
	return &Logger{log: l.log, fields: fields}
}

// Level returns the active level name
func (l *Logger) Level() string {
	return l.log.GetLevel().String()
}

func (l *Logger) newEntry(level string) *Entry {
	return &Entry{entry: logrus.NewEntry(l.log).WithFields(l.fields).WithField("level", level)}
}

// Debug logs a debug message
func (l *Logger) Debug() *Entry {
	return l.newEntry("debug")
}

// Info logs an info message
func (l *Logger) Info() *Entry {
	return l.newEntry("info")
}

// Warn logs a warning message
func (l *Logger) Warn() *Entry {
	return l.newEntry("warn")
}

// Error logs an error message
func (l *Logger) Error() *Entry {
	return l.newEntry("error")
}

// Str adds a string field
func (e *Entry) Str(key, value string) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Strs adds a string slice field
func (e *Entry) Strs(key string, values []string) *Entry {
	e.entry = e.entry.WithField(key, strings.Join(values, ","))
	return e
}

// Int adds an int field
func (e *Entry) Int(key string, value int) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Bool adds a bool field
func (e *Entry) Bool(key string, value bool) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Err adds an error field
func (e *Entry) Err(err error) *Entry {
	if err != nil {
		e.entry = e.entry.WithError(err)
	}
	return e
}

// Dur adds a duration field (formatted in milliseconds)
func (e *Entry) Dur(key string, duration time.Duration) *Entry {
	ms := float64(duration.Microseconds()) / 1000.0
	e.entry = e.entry.WithField(key, ms)
	return e
}

// Float adds a float field
func (e *Entry) Float(key string, value float64) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Msg logs the message with accumulated fields
func (e *Entry) Msg(msg string) {
	level := e.entry.Data["level"]
	delete(e.entry.Data, "level")

	switch level {
	case "debug":
		e.entry.Debug(msg)
	case "info":
		e.entry.Info(msg)
	case "warn":
		e.entry.Warn(msg)
	case "error":
		e.entry.Error(msg)
	default:
		e.entry.Info(msg)
	}
}
