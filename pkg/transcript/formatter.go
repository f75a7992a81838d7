package transcript

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/user/ffconsole/pkg/ports"
)

// Formatter defines the interface for formatting a Transcript.
type Formatter interface {
	// Format converts a Transcript to a formatted string.
	Format(t *Transcript) string
}

// FormatFunc is a function adapter for the Formatter interface.
type FormatFunc func(t *Transcript) string

// Format implements the Formatter interface.
func (f FormatFunc) Format(t *Transcript) string {
	return f(t)
}

// NewTextFormatter returns a formatter that writes the record lines as is.
func NewTextFormatter() Formatter {
	return FormatFunc(func(t *Transcript) string {
		if len(t.Entries) == 0 {
			return ""
		}
		return strings.Join(t.Lines(), "\n") + "\n"
	})
}

// NewJSONFormatter returns a formatter producing an indented JSON document.
func NewJSONFormatter() Formatter {
	return FormatFunc(func(t *Transcript) string {
		type entry struct {
			ports.Entry
			Level string `json:"level"`
		}
		doc := struct {
			GeneratedAt string  `json:"generated_at"`
			Locale      string  `json:"locale"`
			Entries     []entry `json:"entries"`
		}{
			GeneratedAt: t.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			Locale:      t.Locale,
			Entries:     make([]entry, len(t.Entries)),
		}
		for i, e := range t.Entries {
			doc.Entries[i] = entry{Entry: e, Level: e.Level.String()}
		}
		// Entries hold only strings, ints and times
		b, _ := json.MarshalIndent(doc, "", "  ")
		return string(b) + "\n"
	})
}

// MarkdownFormatter renders a Transcript as a Markdown document with
// localized headings.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(t *Transcript) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", l10n.T("Session Log"))

	counts := t.Counts()
	fmt.Fprintf(&b, "- %s: %s\n", l10n.T("Generated"), t.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- %s: %s\n", l10n.T("Locale"), t.Locale)
	fmt.Fprintf(&b, "- %s: %d\n", l10n.T("Entries"), len(t.Entries))
	fmt.Fprintf(&b, "- %s: %d\n", l10n.T("Errors"), counts[ports.LevelError])
	b.WriteString("\n")

	if len(t.Entries) == 0 {
		fmt.Fprintf(&b, "_%s_\n", l10n.T("No entries"))
		return b.String()
	}

	fmt.Fprintf(&b, "| # | %s | %s | %s |\n", l10n.T("Time"), l10n.T("Level"), l10n.T("Message"))
	b.WriteString("|---|---|---|---|\n")
	for _, e := range t.Entries {
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n",
			e.Seq,
			e.At.UTC().Format("15:04:05"),
			escapeCell(e.Label),
			escapeCell(e.Message),
		)
	}
	return b.String()
}

// escapeCell keeps a value inside one Markdown table cell.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", "<br>")
	return strings.ReplaceAll(s, "\n", "<br>")
}

// FormatterForPath picks a formatter from the file extension:
// ".md" Markdown, ".json" JSON, anything else plain text.
func FormatterForPath(path string) Formatter {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return NewMarkdownFormatter()
	case ".json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter()
	}
}
