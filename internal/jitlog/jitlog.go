// Package jitlog is the compiler's small logging facade, modeled on the
// teacher's cmd/deadcode startup idiom (log.SetPrefix, log.SetFlags(0))
// and the pack's leveled-logger texture.
package jitlog

import (
	"fmt"
	"log"
	"os"
)

// Logger is the interface the compiler logs through. Transformer failures
// and "unexpected noop" warnings go through Warnf; verbose emission
// tracing (enabled by runtime.debug) goes through Debugf.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// StdLogger wraps the standard library's *log.Logger. Debug is gated by a
// flag so production compiles pay no formatting cost for Debugf calls.
type StdLogger struct {
	*log.Logger
	Debug bool
}

// NewStdLogger returns a StdLogger writing to os.Stderr with the prefix
// "jitc: ", matching the teacher's log.SetPrefix convention.
func NewStdLogger(debug bool) *StdLogger {
	return &StdLogger{Logger: log.New(os.Stderr, "jitc: ", 0), Debug: debug}
}

func (l *StdLogger) Debugf(format string, args ...interface{}) {
	if !l.Debug {
		return
	}
	l.Output(2, fmt.Sprintf("debug: "+format, args...))
}

func (l *StdLogger) Warnf(format string, args ...interface{}) {
	l.Output(2, fmt.Sprintf("warning: "+format, args...))
}

// Nop discards everything; used by tests and library callers that don't
// want compiler diagnostics on stderr.
type Nop struct{}

func (Nop) Debugf(string, ...interface{}) {}
func (Nop) Warnf(string, ...interface{})  {}

var _ Logger = (*StdLogger)(nil)
var _ Logger = Nop{}
