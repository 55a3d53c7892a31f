// Package logger is the leveled logger shared by every package. Output
// goes through zerolog's console writer; the level can change at runtime.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Level is the verbosity of a Logger.
type Level int

const (
	// LevelOff drops everything.
	LevelOff Level = iota
	// LevelNormal shows info, warn and error.
	LevelNormal
	// LevelVerbose adds debug.
	LevelVerbose
)

// ParseLevel reads a level name as used in config files and flags.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "quiet", "none":
		return LevelOff, nil
	case "", "normal", "info":
		return LevelNormal, nil
	case "verbose", "debug":
		return LevelVerbose, nil
	default:
		return LevelNormal, fmt.Errorf("unknown log level %q", s)
	}
}

func (l Level) toZerolog() zerolog.Level {
	switch l {
	case LevelOff:
		return zerolog.Disabled
	case LevelVerbose:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger is safe for concurrent use.
type Logger struct {
	mu    sync.RWMutex
	level Level
	zl    zerolog.Logger
}

// New writes to out, or stderr when out is nil.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	console := zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: "15:04:05"}
	return &Logger{
		level: level,
		zl:    zerolog.New(console).With().Timestamp().Logger().Level(level.toZerolog()),
	}
}

// SetLevel changes the verbosity.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.zl = l.zl.Level(level.toZerolog())
}

// GetLevel reports the current verbosity.
func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *Logger) emit(level zerolog.Level, format string, args []any) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.zl.WithLevel(level).Msgf(format, args...)
}

// Debug is shown only at LevelVerbose.
func (l *Logger) Debug(format string, args ...any) { l.emit(zerolog.DebugLevel, format, args) }

// Info logs routine events.
func (l *Logger) Info(format string, args ...any) { l.emit(zerolog.InfoLevel, format, args) }

// Warn logs recoverable problems.
func (l *Logger) Warn(format string, args ...any) { l.emit(zerolog.WarnLevel, format, args) }

// Error logs failures.
func (l *Logger) Error(format string, args ...any) { l.emit(zerolog.ErrorLevel, format, args) }
