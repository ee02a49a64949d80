// Package logger owns the process-wide zerolog instance. main calls Init
// once with the configured options; code that cannot receive a logger by
// injection falls back to Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options configure the process logger.
type Options struct {
	// Level names the minimum level to emit (trace, debug, info, warn,
	// error). Empty or unknown values mean info.
	Level string
	// Pretty switches the JSON lines to a colourised console format for
	// local development.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

var (
	mu       sync.Mutex
	instance *zerolog.Logger
)

// Init builds the singleton logger. Calls after the first return the
// existing instance unchanged.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return *instance
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	log := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	instance = &log
	return log
}

// Get returns the logger built by Init. It panics when Init has not run:
// logging before configuration is a wiring bug, not a runtime condition.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		panic("logger: Init has not been called")
	}
	return *instance
}

// Reset discards the singleton so tests can rebuild it with different
// options.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
}
