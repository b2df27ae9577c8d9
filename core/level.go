package core

import (
	"strconv"
	"strings"
)

// Level represents the severity of a log record. The numeric values match
// Python's logging module so records survive a round-trip through external
// collectors unchanged.
type Level int32

const (
	// NotSet is a sentinel meaning "inherit the level from the parent
	// logger". It is never a real threshold at evaluation time.
	NotSet Level = 0
	// Debug for detailed diagnostic output
	Debug Level = 10
	// Info for routine informational messages
	Info Level = 20
	// Warning for conditions that deserve attention
	Warning Level = 30
	// Error for failures of individual operations
	Error Level = 40
	// Critical for failures that threaten the whole process
	Critical Level = 50
)

// String returns the upper-case level name.
func (l Level) String() string {
	switch l {
	case NotSet:
		return "NOTSET"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	case Critical:
		return "CRITICAL"
	default:
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
}

// ParseLevel converts a level name to a Level. Matching is
// case-insensitive and "WARN" is accepted as an alias for Warning.
// Unknown names map to NotSet.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return Debug
	case "INFO":
		return Info
	case "WARN", "WARNING":
		return Warning
	case "ERROR":
		return Error
	case "CRITICAL", "FATAL":
		return Critical
	default:
		return NotSet
	}
}

// LevelFromInt maps a numeric severity onto the enum. Values that are not
// one of the defined thresholds map to NotSet.
func LevelFromInt(n int) Level {
	switch n {
	case 10:
		return Debug
	case 20:
		return Info
	case 30:
		return Warning
	case 40:
		return Error
	case 50:
		return Critical
	default:
		return NotSet
	}
}
