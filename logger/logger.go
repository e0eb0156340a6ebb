// Package logger provides a configurable logger across the module
//
// The core coding packages do not log; orchestration code does.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger()
}

// SetOutput changes the output of the global logger
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// Set overrides the global logger
func Set(l zerolog.Logger) {
	logger = l
}

// Disable the logger (i.e. output to io.Discard)
func Disable() {
	logger = zerolog.Nop()
}

// Logger returns a sub logger of the global logger
func Logger() *zerolog.Logger {
	return &logger
}
