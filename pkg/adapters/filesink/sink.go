// Package filesink provides an event log sink that appends to a file.
package filesink

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/user/ffconsole/pkg/ports"
)

// Format selects how entries are written.
type Format int

const (
	// FormatText writes the record line, one per line.
	FormatText Format = iota
	// FormatJSONL writes one JSON object per entry.
	FormatJSONL
)

// FormatForPath picks FormatJSONL for ".jsonl" and ".ndjson" paths and
// FormatText otherwise.
func FormatForPath(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".jsonl") || strings.HasSuffix(lower, ".ndjson") {
		return FormatJSONL
	}
	return FormatText
}

// Sink appends entries to a file.
type Sink struct {
	path   string
	format Format
	fs     ports.FileSystem
}

// New creates a new file sink.
func New(path string, format Format, fs ports.FileSystem) *Sink {
	return &Sink{
		path:   path,
		format: format,
		fs:     fs,
	}
}

// Write implements ports.EntrySink.
func (s *Sink) Write(entry ports.Entry) error {
	var data []byte
	switch s.format {
	case FormatJSONL:
		b, err := json.Marshal(record{
			Entry: entry,
			Level: entry.Level.String(),
		})
		if err != nil {
			return fmt.Errorf("encode entry %d: %w", entry.Seq, err)
		}
		data = append(b, '\n')
	default:
		data = []byte(entry.Line + "\n")
	}

	if err := s.fs.AppendFile(s.path, data); err != nil {
		return fmt.Errorf("append to %s: %w", s.path, err)
	}
	return nil
}

type record struct {
	ports.Entry
	Level string `json:"level"`
}

// Ensure Sink implements ports.EntrySink
var _ ports.EntrySink = (*Sink)(nil)
