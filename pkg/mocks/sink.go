package mocks

import (
	"sync"

	"github.com/user/ffconsole/pkg/ports"
)

// EntrySink is a mock implementation of ports.EntrySink that records entries.
type EntrySink struct {
	mu      sync.RWMutex
	entries []ports.Entry

	// Err is returned from every Write when set.
	Err error

	WriteFunc func(entry ports.Entry) error
}

// NewEntrySink creates a new mock EntrySink.
func NewEntrySink() *EntrySink {
	return &EntrySink{}
}

func (m *EntrySink) Write(entry ports.Entry) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return m.Err
}

// Entries returns the recorded entries (for test verification).
func (m *EntrySink) Entries() []ports.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ports.Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Lines returns the recorded formatted lines (for test verification).
func (m *EntrySink) Lines() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lines := make([]string, len(m.entries))
	for i, e := range m.entries {
		lines[i] = e.Line
	}
	return lines
}

var _ ports.EntrySink = (*EntrySink)(nil)
