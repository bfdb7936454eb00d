package logger

import (
	"strings"

	"github.com/rs/zerolog"
)

var levels = map[string]zerolog.Level{
	"trace":   zerolog.TraceLevel,
	"debug":   zerolog.DebugLevel,
	"info":    zerolog.InfoLevel,
	"warn":    zerolog.WarnLevel,
	"warning": zerolog.WarnLevel,
	"error":   zerolog.ErrorLevel,
}

// ParseLevel maps a LOG_LEVEL value to a zerolog level, case-insensitively.
// Anything unrecognised is info.
func ParseLevel(s string) zerolog.Level {
	if lvl, ok := levels[strings.ToLower(strings.TrimSpace(s))]; ok {
		return lvl
	}
	return zerolog.InfoLevel
}
