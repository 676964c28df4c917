// SPDX-License-Identifier: MIT

// Package logging builds the zerolog loggers used by the command and server
// layers. Library packages never log; they return errors.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Accepted values for the level and format settings.
var (
	Levels  = []string{"debug", "info", "warn", "error"}
	Formats = []string{"json", "text"}
)

// ValidLevel reports whether s names a supported level.
func ValidLevel(s string) bool {
	return contains(Levels, strings.ToLower(s))
}

// ValidFormat reports whether s names a supported output format.
func ValidFormat(s string) bool {
	return contains(Formats, strings.ToLower(s))
}

// New creates a logger writing to w. Unknown levels fall back to info and
// unknown formats to json; validate beforehand to reject them.
func New(level, format string, w io.Writer) zerolog.Logger {
	var lvl zerolog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	default:
		lvl = zerolog.InfoLevel
	}

	out := w
	if strings.ToLower(format) == "text" {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Nop returns a disabled logger, handy for tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}
