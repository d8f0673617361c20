// Package log configures the process-wide zerolog logger. Components pull
// named sub-loggers from it instead of constructing their own.
package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once sync.Once
	base = zerolog.Nop()
)

// Configure initializes the base logger once; later calls are no-ops.
// Unknown level strings fall back to info. Console output is meant for a
// human terminal, otherwise lines are JSON.
func Configure(level string, console bool) {
	once.Do(func() {
		lvl, err := zerolog.ParseLevel(strings.ToLower(level))
		if err != nil || lvl == zerolog.NoLevel {
			lvl = zerolog.InfoLevel
		}
		var w io.Writer = os.Stderr
		if console {
			w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		}
		base = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	})
}

// WithComponent returns a logger tagged with the component name.
func WithComponent(name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}
