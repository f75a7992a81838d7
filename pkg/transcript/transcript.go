// Package transcript exports the event log record of a session.
package transcript

import (
	"time"

	"github.com/user/ffconsole/pkg/ports"
)

// Transcript is a point-in-time copy of an event log.
type Transcript struct {
	GeneratedAt time.Time
	Locale      string
	Entries     []ports.Entry
}

// New creates a Transcript stamped with the current time.
// entries is copied.
func New(locale string, entries []ports.Entry) *Transcript {
	return &Transcript{
		GeneratedAt: time.Now(),
		Locale:      locale,
		Entries:     append([]ports.Entry(nil), entries...),
	}
}

// Lines returns the formatted record lines in order.
func (t *Transcript) Lines() []string {
	lines := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		lines[i] = e.Line
	}
	return lines
}

// Counts returns the number of entries per level.
func (t *Transcript) Counts() map[ports.LogLevel]int {
	counts := make(map[ports.LogLevel]int)
	for _, e := range t.Entries {
		counts[e.Level]++
	}
	return counts
}
