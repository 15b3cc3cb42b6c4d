// Package logger builds the service's root zerolog logger. Everything that
// logs receives a child of this logger by injection; there is no package-level
// logger anywhere in the codebase.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"

	"petconnect/internal/platform/config"
)

// New constructs the root logger: console writer for local development, JSON
// elsewhere.
func New(cfg config.LogConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if cfg.Format == "console" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(level).With().Timestamp().Logger()
}

// Nop returns a disabled logger for tests that don't assert on output.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
