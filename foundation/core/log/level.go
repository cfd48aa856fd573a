// File: level.go
// Title: Log Level Definitions
// Description: Log levels with their long, short and colored renderings,
//              kept in one table so that parsing and printing agree.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with standard log levels
// - 2025-03-02 v0.2.0: Table-driven level metadata, quieter default for CLI use

package log

import (
	"strings"
)

// Level represents the importance level of a log message
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	// LevelFatal entries are written, then the process exits
	LevelFatal
)

const colorReset = "\033[0m"

type levelInfo struct {
	name    string
	short   string
	color   string
	aliases []string
}

var levelTable = [...]levelInfo{
	LevelTrace: {"trace", "TRC", "\033[37m", []string{"trc"}},
	LevelDebug: {"debug", "DBG", "\033[36m", []string{"dbg"}},
	LevelInfo:  {"info", "INF", "\033[32m", []string{"inf", "information"}},
	LevelWarn:  {"warn", "WRN", "\033[33m", []string{"wrn", "warning"}},
	LevelError: {"error", "ERR", "\033[31m", []string{"err"}},
	LevelFatal: {"fatal", "FTL", "\033[35m", []string{"ftl"}},
}

func (l Level) info() (levelInfo, bool) {
	if l < LevelTrace || l > LevelFatal {
		return levelInfo{}, false
	}
	return levelTable[l], true
}

// String returns the lower-case level name, or "unknown"
func (l Level) String() string {
	if info, ok := l.info(); ok {
		return info.name
	}
	return "unknown"
}

// ShortString returns the three-letter tag used by the text formatter
func (l Level) ShortString() string {
	if info, ok := l.info(); ok {
		return info.short
	}
	return "???"
}

// Color returns the ANSI color sequence used by the console formatter
func (l Level) Color() string {
	if info, ok := l.info(); ok {
		return info.color
	}
	return colorReset
}

// ShouldLog reports whether l passes the minimum level
func (l Level) ShouldLog(minLevel Level) bool {
	return l >= minLevel
}

// ParseLevel accepts a level name, its short tag or a common alias,
// case-insensitively
func ParseLevel(level string) (Level, error) {
	s := strings.ToLower(strings.TrimSpace(level))
	for l, info := range levelTable {
		if s == info.name || s == strings.ToLower(info.short) {
			return Level(l), nil
		}
		for _, alias := range info.aliases {
			if s == alias {
				return Level(l), nil
			}
		}
	}
	return LevelInfo, &ParseError{Input: level, Type: "level"}
}

// ParseError represents an error parsing a log configuration value
type ParseError struct {
	Input string
	Type  string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return "invalid " + e.Type + ": " + e.Input
}

// AllLevels returns all levels from most to least verbose
func AllLevels() []Level {
	levels := make([]Level, len(levelTable))
	for i := range levelTable {
		levels[i] = Level(i)
	}
	return levels
}

// DefaultLevel returns the level used when nothing is configured. The CLI
// stays quiet unless something goes wrong.
func DefaultLevel() Level {
	return LevelWarn
}

// VerboseLevel returns the level selected by --verbose
func VerboseLevel() Level {
	return LevelDebug
}
