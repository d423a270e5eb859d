// Package logging provides the verbose diagnostic logger shared by the
// builder, optimizer, and executor. It is deliberately small: no
// third-party logging library appears anywhere in the retrieval pack
// this module was grounded on, so this mirrors the teacher's own
// fmt/io/os-based Logger exactly.
package logging

import (
	"fmt"
	"io"
	"os"
)

// Logger prints diagnostic lines when enabled, and is a no-op otherwise.
type Logger struct {
	enabled bool
	out     io.Writer
}

// New creates a Logger. When enabled is false every method is a no-op.
func New(enabled bool) *Logger {
	return &Logger{enabled: enabled, out: os.Stderr}
}

// SetOutput redirects where log lines are written.
func (l *Logger) SetOutput(w io.Writer) {
	l.out = w
}

// Log prints a formatted diagnostic line if verbose mode is enabled.
func (l *Logger) Log(format string, args ...interface{}) {
	if l == nil || !l.enabled {
		return
	}
	fmt.Fprintf(l.out, "[nfarex] "+format+"\n", args...)
}

// Section prints a banner line if verbose mode is enabled.
func (l *Logger) Section(name string) {
	if l == nil || !l.enabled {
		return
	}
	fmt.Fprintf(l.out, "\n[nfarex] === %s ===\n", name)
}

// Enabled reports whether the logger prints anything.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}
