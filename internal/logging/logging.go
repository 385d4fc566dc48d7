// Package logging builds the zerolog loggers shared by the pipeline components.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Field names used across components.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldIdentity  = "identity"
	FieldKey       = "content_key"
)

// ErrInvalidLevel is returned for unrecognized level names.
var ErrInvalidLevel = errors.New("invalid log level")

// ErrInvalidFormat is returned for unrecognized output formats.
var ErrInvalidFormat = errors.New("invalid log format")

// Logger aliases zerolog.Logger so packages can accept loggers without
// importing zerolog directly.
type Logger = zerolog.Logger

// New builds a logger writing to w at the given level ("debug", "info",
// "warn", "error"; empty means "info") in the given format. Writes to w are
// serialized, so one logger can be shared by concurrent conversions.
func New(w io.Writer, level, format string) (Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return Nop(), err
	}
	w = zerolog.SyncWriter(w)

	switch strings.ToLower(format) {
	case "", FormatJSON:
	case FormatConsole:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return Nop(), fmt.Errorf("%w: %q (must be json or console)", ErrInvalidFormat, format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// ParseLevel converts a level name to a zerolog level.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
	return lvl, nil
}

// Component returns a child logger tagged with the component name.
func Component(l Logger, name string) Logger {
	return l.With().Str(FieldComponent, name).Logger()
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return zerolog.Nop()
}
