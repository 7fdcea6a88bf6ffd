package logger

import "github.com/rs/zerolog"

// NewTestLogger returns a Logger that discards all output. Tests that need
// to assert on log lines should use NewWithWriter with a buffer instead.
func NewTestLogger() Logger {
	return Logger{Logger: zerolog.Nop()}
}
