package sieve

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level indicates event severity, aligned with OpenTelemetry severity
// numbers. The gaps between named values leave room for finer grading
// without renumbering.
type Level int

const (
	// LevelDebug is for detailed diagnostic events (OTel DEBUG, 5-8).
	LevelDebug Level = 5
	// LevelInfo is for routine operational events (OTel INFO, 9-12).
	LevelInfo Level = 9
	// LevelWarn is for conditions that deserve attention (OTel WARN, 13-16).
	LevelWarn Level = 13
	// LevelError is for failures of an operation (OTel ERROR, 17-20).
	LevelError Level = 17
	// LevelCritical is for failures of the system itself (OTel FATAL, 21-24).
	LevelCritical Level = 21
)

// Levels returns the named severity levels in ascending order.
func Levels() []Level {
	return []Level{LevelDebug, LevelInfo, LevelWarn, LevelError, LevelCritical}
}

// Valid reports whether l is one of the named severity levels.
func (l Level) Valid() bool {
	switch l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError, LevelCritical:
		return true
	}
	return false
}

// String returns the level's lowercase name.
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
	case LevelCritical:
		return "critical"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// SlogLevel converts the level for use with log/slog. LevelCritical maps
// above slog.LevelError, which has no named slog equivalent; levels
// outside the named set map to slog.LevelInfo.
func (l Level) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelCritical:
		return slog.LevelError + 4
	}
	return slog.LevelInfo
}

// ParseLevel converts a level name to a Level. Matching is
// case-insensitive and "warning" is accepted as an alias for "warn".
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "critical":
		return LevelCritical, nil
	}
	return 0, &InvalidLevelError{Name: name}
}
