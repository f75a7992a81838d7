package transcript

import (
	"fmt"

	"github.com/user/ffconsole/pkg/ports"
)

// Writer writes formatted transcripts to files.
type Writer struct {
	formatter Formatter
	fs        ports.FileSystem
}

// NewWriter creates a new Writer with the given Formatter.
func NewWriter(formatter Formatter, fs ports.FileSystem) *Writer {
	return &Writer{
		formatter: formatter,
		fs:        fs,
	}
}

// Write formats the transcript and writes it to the specified path.
// Parent directories are created by the filesystem.
func (w *Writer) Write(path string, t *Transcript) error {
	content := w.formatter.Format(t)

	if err := w.fs.WriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	return nil
}
