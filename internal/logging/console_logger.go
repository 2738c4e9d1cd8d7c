// Package logging provides concrete implementations of the nbfix.Logger interface.
package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/vvka-141/nbfix/internal/tui"
	"github.com/vvka-141/nbfix/pkg/nbfix"
)

// ConsoleLogger writes human-readable status lines to a writer.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	out     io.Writer
	verbose bool
	palette tui.Palette
	mu      sync.Mutex
}

// NewConsoleLogger creates a new ConsoleLogger writing to out.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
// Status marks are colored only when out is a terminal.
func NewConsoleLogger(out io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		out:     out,
		verbose: verbose,
		palette: tui.NewPalette(tui.ColorEnabled(out)),
	}
}

func (l *ConsoleLogger) write(prefix, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, prefix+format+"\n", args...)
	} else {
		fmt.Fprint(l.out, prefix+format+"\n")
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.palette.Muted("[VERBOSE]")+" ", format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args)
}

// Success logs a confirmed or completed step.
func (l *ConsoleLogger) Success(format string, args ...interface{}) {
	l.write(l.palette.Success()+" ", format, args)
}

// Done logs the final message of a completed operation.
func (l *ConsoleLogger) Done(format string, args ...interface{}) {
	l.write(l.palette.Done()+" ", format, args)
}

// Warn logs a detected problem that is not a failure.
func (l *ConsoleLogger) Warn(format string, args ...interface{}) {
	l.write(l.palette.Warning()+" ", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(l.palette.Error()+" ", format, args)
}

// Verify ConsoleLogger implements the Logger interface at compile time
var _ nbfix.Logger = (*ConsoleLogger)(nil)
