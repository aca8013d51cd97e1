// Package logger holds the process-wide zerolog logger.
//
// Call Init once at startup; anything that runs before that gets a no-op logger from Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	// trace, debug, info, warn, error. Empty means info.
	Level string
	// Console output for development; JSON otherwise.
	Pretty bool
	Output io.Writer
}

var (
	instance = zerolog.Nop()
	once     sync.Once
)

func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		instance = zerolog.New(out).
			Level(ParseLevel(opts.Level)).
			With().
			Timestamp().
			Logger()
	})
	return instance
}

func Get() zerolog.Logger {
	return instance
}

// Reset is for tests.
func Reset() {
	once = sync.Once{}
	instance = zerolog.Nop()
}

func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
