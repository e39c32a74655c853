// Package logging builds the zerolog loggers shared by every component.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogKey names the context fields components attach to their loggers.
var LogKey = struct {
	Module string
	Port   string
	Node   string
}{
	Module: "module",
	Port:   "port",
	Node:   "node",
}

// New returns a root logger writing to w at the named level. Console output
// is human-readable; anything else gets JSON lines.
func New(w io.Writer, level string, console bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// For derives a component logger.
func For(logger zerolog.Logger, module string) zerolog.Logger {
	return logger.With().Str(LogKey.Module, module).Logger()
}
