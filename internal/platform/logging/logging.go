package logging

import (
	"io"

	hclog "github.com/hashicorp/go-hclog"
)

// New returns the root application logger. Unknown levels fall back to warn.
func New(level string, out io.Writer) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "pomo",
		Level:  lvl,
		Output: out,
	})
}

// Discard is used by hosts that must hand a logger to a library but want it silent.
func Discard() hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel})
}
