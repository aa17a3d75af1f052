// Package applog provides the gated, timestamped logging used across cardhub.
package applog

import (
	"log"
	"time"
)

// DateFormat is the timestamp layout prefixed to every log line.
const DateFormat string = `2006-01-02T15:04:05.000-07:00`

// Logger gates output behind a verbosity flag, the way cfg.verbose gated
// the original logf helper.
type Logger struct {
	Verbose bool
}

// New returns a Logger with the given verbosity.
func New(verbose bool) *Logger {
	return &Logger{Verbose: verbose}
}

// Printf logs a formatted, timestamped line iff the logger is verbose.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || !l.Verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(DateFormat)}, args...)...)
}
