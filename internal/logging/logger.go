// Package logging provides the leveled logger used by the moltopo binary.
// It satisfies topology.Logger.
package logging

import (
	"io"
	"log"
	"strings"
)

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

// ParseLevel parses a case-insensitive level name. Unknown names give info.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

type Logger struct {
	level Level
	out   *log.Logger
}

// New returns a logger writing to w at the given level.
func New(w io.Writer, level string) *Logger {
	return &Logger{
		level: ParseLevel(level),
		out:   log.New(w, "", log.LstdFlags),
	}
}

func (l *Logger) Level() Level { return l.level }

func (l *Logger) shouldLog(level Level) bool {
	return level >= l.level
}

func (l *Logger) Debugf(format string, v ...any) {
	if l.shouldLog(LevelDebug) {
		l.out.Printf("[DEBUG] "+format, v...)
	}
}

func (l *Logger) Infof(format string, v ...any) {
	if l.shouldLog(LevelInfo) {
		l.out.Printf("[INFO] "+format, v...)
	}
}

func (l *Logger) Warnf(format string, v ...any) {
	if l.shouldLog(LevelWarn) {
		l.out.Printf("[WARN] "+format, v...)
	}
}

func (l *Logger) Errorf(format string, v ...any) {
	if l.shouldLog(LevelError) {
		l.out.Printf("[ERROR] "+format, v...)
	}
}
