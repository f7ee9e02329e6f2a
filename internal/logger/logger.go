// Package logger configures the process-wide zerolog instance.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Setup sets the global log level and output format and returns the root
// logger. format "pretty" switches to the console writer for local
// development; anything else emits JSON lines. Unknown levels fall back
// to info.
func Setup(level, format string) zerolog.Logger {
	writer := io.Writer(os.Stdout)
	if format == "pretty" {
		writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(writer).With().Timestamp().Caller().Logger()
}
