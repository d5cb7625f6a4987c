// Package logger configures the global zerolog logger for the command line tools.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	// Level is a zerolog level name; unknown names fall back to info.
	Level string
	// NoColor disables colors. Colors are also off when Output is not a terminal.
	NoColor bool
	// Output defaults to stderr.
	Output io.Writer
}

// Init initializes the global logger with a console writer.
func Init(opts Options) {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.TimeOnly,
		NoColor:    opts.NoColor || !isTerminal(out),
	}).With().Timestamp().Logger()

	log.Debug().Str("level", level.String()).Msg("logger initialized")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
