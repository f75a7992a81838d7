package logger

import "github.com/user/ffconsole/pkg/ports"

// Noop is a sink that discards all entries.
// Used for quiet mode when no terminal output is desired.
type Noop struct{}

// NewNoop creates a new no-op sink.
func NewNoop() *Noop {
	return &Noop{}
}

// Write does nothing.
func (n *Noop) Write(entry ports.Entry) error {
	return nil
}

var _ ports.EntrySink = (*Noop)(nil)
