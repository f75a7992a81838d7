// Package logger provides event log sinks for the terminal and the
// operator-facing slog setup.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/user/ffconsole/pkg/ports"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
)

// Console mirrors event log entries to the terminal with color support.
// Error entries go to the error stream, everything else to the output stream.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	color  bool
}

// NewConsole creates a console sink on stdout and stderr.
// Color output is automatically enabled when stdout is a terminal.
func NewConsole() *Console {
	return NewConsoleWriter(os.Stdout, os.Stderr, IsTerminal(os.Stdout))
}

// NewConsoleWriter creates a console sink on the given writers.
func NewConsoleWriter(out, errOut io.Writer, color bool) *Console {
	return &Console{
		out:    out,
		errOut: errOut,
		color:  color,
	}
}

// Write implements ports.EntrySink.
func (c *Console) Write(entry ports.Entry) error {
	output := entry.Line

	// Color the label only; the message is printed as given
	if c.color {
		if code := levelColor(entry.Level); code != "" {
			output = code + "[" + entry.Label + "]" + colorReset + ": " + entry.Message
		}
	}

	w := c.out
	if entry.Level == ports.LevelError {
		w = c.errOut
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintln(w, output)
	return err
}

func levelColor(level ports.LogLevel) string {
	switch level {
	case ports.LevelInfo:
		return colorCyan
	case ports.LevelSuccess:
		return colorGreen
	case ports.LevelError:
		return colorRed
	default:
		return ""
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var _ ports.EntrySink = (*Console)(nil)
