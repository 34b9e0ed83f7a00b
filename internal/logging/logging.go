// Package logging builds the process-wide zerolog logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a timestamped logger writing to w. Set LOG_PRETTY=1 for
// the human console format during development.
func New(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if os.Getenv("LOG_PRETTY") == "1" {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}
