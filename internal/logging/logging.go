// Package logging builds the charmbracelet logger shared by the commands.
package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// TimeFormat is the timestamp layout used on every log line.
const TimeFormat = "15:04:05"

// New returns a logger writing to w at the named level ("debug", "info",
// "warn", "error").
func New(level string, w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
	}), nil
}

// Level picks the effective level: debug wins over the configured one, and
// an empty level means info.
func Level(configured string, debug bool) string {
	switch {
	case debug:
		return "debug"
	case configured == "":
		return "info"
	default:
		return configured
	}
}
