// Package logging wires zerolog as the process-wide structured logger.
// It replaces the teacher's fmt.Printf-based ErrorHandler with a
// zerolog-backed implementation honoring the same shape: a component can
// ask for its own logger and report errors through it.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New configures the base logger. human controls whether output is a
// colorized console writer (good for local dev) or newline JSON (good
// for production log shipping).
func New(human bool, level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var out = os.Stderr
	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	if human {
		logger = logger.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
	}
	return logger
}

// Component returns a child logger tagged with the owning component, the
// pattern used throughout sonora instead of a bare package-level logger.
func Component(base zerolog.Logger, name string) zerolog.Logger {
	return base.With().Str("component", name).Logger()
}

// ErrorHandler mirrors the teacher's ErrorHandler interface (errors.go)
// so call sites that want a pluggable error boundary keep that shape,
// but errors are routed through zerolog instead of fmt.Printf.
type ErrorHandler interface {
	HandleError(error)
}

// ZerologErrorHandler logs at error level through a component logger.
type ZerologErrorHandler struct {
	Logger zerolog.Logger
}

func (h ZerologErrorHandler) HandleError(err error) {
	h.Logger.Error().Err(err).Msg("engine error")
}
