// Package nxlog provides the structured logging collaborator a Context
// owns and forwards filtered entries to (spec §4.I "Context").
package nxlog

import (
	"fmt"
	"io"
	"os"
	"strings"

	cblog "github.com/charmbracelet/log"
)

// Level mirrors the four severities a Context filters against.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel parses a case-insensitive level name, defaulting to
// LevelInfo on empty input.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unrecognized log level %q", s)
	}
}

// Sink is the collaborator a Context forwards filtered, formatted log
// entries to (spec §6 "Configuration source", §4.I).
type Sink interface {
	Log(level Level, message string, fields ...any)
}

// CharmSink adapts charmbracelet/log as the production Sink
// implementation, grounded on the teacher's infrastructure/logging
// adapter.
type CharmSink struct {
	base *cblog.Logger
}

// NewCharmSink builds a Sink writing to w (stdout if nil) with the given
// component tag attached to every entry.
func NewCharmSink(w io.Writer, component string) *CharmSink {
	if w == nil {
		w = os.Stdout
	}
	base := cblog.NewWithOptions(w, cblog.Options{
		Level:           cblog.DebugLevel,
		ReportTimestamp: true,
	})
	if component != "" {
		base = base.With("component", component)
	}
	return &CharmSink{base: base}
}

func (s *CharmSink) Log(level Level, message string, fields ...any) {
	if s == nil || s.base == nil {
		return
	}
	switch level {
	case LevelDebug:
		s.base.Debug(message, fields...)
	case LevelWarn:
		s.base.Warn(message, fields...)
	case LevelError:
		s.base.Error(message, fields...)
	default:
		s.base.Info(message, fields...)
	}
}

// Logger filters entries by level before forwarding to a Sink
// (spec §4.I "Exposes a structured logger log(level, format, args...)
// that filters by level and forwards to the sink").
type Logger struct {
	sink     Sink
	minLevel Level
}

// New creates a Logger bound to sink, filtering anything below minLevel.
// A nil sink makes every call a no-op, which callers rely on for
// Contexts created without logging configured.
func New(sink Sink, minLevel Level) *Logger {
	return &Logger{sink: sink, minLevel: minLevel}
}

// Log filters by level, formats format with args via fmt.Sprintf when
// any args are given (format is used verbatim otherwise), and forwards
// the message to the sink.
func (l *Logger) Log(level Level, format string, args ...any) {
	if l == nil || l.sink == nil || level < l.minLevel {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	l.sink.Log(level, msg)
}

func (l *Logger) Debug(format string, args ...any) { l.Log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.Log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.Log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.Log(LevelError, format, args...) }

// MinLevel reports the logger's configured filter level.
func (l *Logger) MinLevel() Level { return l.minLevel }
