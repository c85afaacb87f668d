// Package logger provides structured logging for the history browser.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. Diagnostics go to stderr so they
// never interleave with rendered output on stdout. The default level is
// warn; verbose drops it to debug (skipped lines, dropped sessions).
func Setup(verbose bool) zerolog.Logger {
	return New(os.Stderr, verbose)
}

// New creates a logger writing to w at the level implied by verbose.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()

	log.Logger = logger
	zerolog.DefaultContextLogger = &logger
	return logger
}
