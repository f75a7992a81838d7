// Package nullsink provides a no-op event log sink.
package nullsink

import "github.com/user/ffconsole/pkg/ports"

// Sink is a no-op implementation of ports.EntrySink.
// It stands in when no log file is configured.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Write does nothing.
func (s *Sink) Write(entry ports.Entry) error {
	return nil
}

// Ensure Sink implements ports.EntrySink
var _ ports.EntrySink = (*Sink)(nil)
