// Package eventlog provides the leveled, translated status log shown to users.
//
// Every call appends exactly one line of the form "[<label>]: <message>".
// Lines are kept in call order and are never rewritten. Level labels are
// resolved through a ports.Translator for the locale reported by a
// ports.LocaleSource at call time, so switching the locale only affects
// lines appended afterwards.
package eventlog

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/user/ffconsole/pkg/ports"
)

// Option configures an EventLog.
type Option func(*EventLog)

// WithClock sets the time source used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(l *EventLog) {
		l.now = now
	}
}

// WithMaxEntries caps the number of entries kept in memory.
// Zero or less keeps every entry.
func WithMaxEntries(n int) Option {
	return func(l *EventLog) {
		if n < 0 {
			n = 0
		}
		l.maxEntries = n
	}
}

// WithSinks subscribes sinks at construction time.
func WithSinks(sinks ...ports.EntrySink) Option {
	return func(l *EventLog) {
		for _, s := range sinks {
			if s != nil {
				l.addSink(s)
			}
		}
	}
}

// WithSlog sets the logger used to report sink failures.
func WithSlog(logger *slog.Logger) Option {
	return func(l *EventLog) {
		if logger != nil {
			l.diag = logger
		}
	}
}

// FixedLocale is a LocaleSource that always reports the same locale.
type FixedLocale string

// Locale implements ports.LocaleSource.
func (f FixedLocale) Locale() string {
	return string(f)
}

type subscription struct {
	id   int
	sink ports.EntrySink
}

// EventLog is an append-only record of translated status lines.
// It is safe for concurrent use; subscribers observe entries in append order.
type EventLog struct {
	translator ports.Translator
	locales    ports.LocaleSource
	now        func() time.Time
	maxEntries int
	diag       *slog.Logger

	// notifyMu serializes append+notify so sinks see the global append order.
	notifyMu sync.Mutex

	mu      sync.RWMutex
	entries []ports.Entry
	seq     int
	subs    []subscription
	nextSub int
}

// New creates an empty EventLog.
// A nil locales source resolves labels with an empty locale, which
// translators treat as the fallback locale.
func New(translator ports.Translator, locales ports.LocaleSource, opts ...Option) *EventLog {
	if locales == nil {
		locales = FixedLocale("")
	}
	l := &EventLog{
		translator: translator,
		locales:    locales,
		now:        time.Now,
		diag:       slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Log appends "[<label>]: <message>". Empty values are kept as is.
func (l *EventLog) Log(label, message string) {
	l.append(ports.LevelCustom, label, message, l.locales.Locale())
}

// Info appends message with the translated info label.
func (l *EventLog) Info(message string) {
	l.leveled(ports.LevelInfo, message)
}

// Success appends message with the translated success label.
func (l *EventLog) Success(message string) {
	l.leveled(ports.LevelSuccess, message)
}

// Error appends message with the translated error label.
func (l *EventLog) Error(message string) {
	l.leveled(ports.LevelError, message)
}

// Infof formats according to a format specifier and calls Info.
func (l *EventLog) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// Successf formats according to a format specifier and calls Success.
func (l *EventLog) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}

// Errorf formats according to a format specifier and calls Error.
func (l *EventLog) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// Append adds a line at the given level. LevelCustom uses message
// verbatim with an empty label; use Log for a custom label.
func (l *EventLog) Append(level ports.LogLevel, message string) {
	if level == ports.LevelCustom {
		l.Log("", message)
		return
	}
	l.leveled(level, message)
}

// Label resolves the translated label of level for the active locale.
func (l *EventLog) Label(level ports.LogLevel) string {
	return l.resolve(l.locales.Locale(), level)
}

// Entries returns a copy of the formatted record in append order.
func (l *EventLog) Entries() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	lines := make([]string, len(l.entries))
	for i, e := range l.entries {
		lines[i] = e.Line
	}
	return lines
}

// Records returns a copy of the structured entries in append order.
func (l *EventLog) Records() []ports.Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]ports.Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries currently held.
func (l *EventLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Subscribe registers sink for every subsequently appended entry.
// The returned function removes the subscription; calling it twice is safe.
func (l *EventLog) Subscribe(sink ports.EntrySink) func() {
	l.mu.Lock()
	id := l.addSink(sink)
	l.mu.Unlock()
	return l.unsubscriber(id)
}

// Follow returns the current record and subscribes sink in one step, so
// every entry is either in the backlog or delivered to sink, never both.
func (l *EventLog) Follow(sink ports.EntrySink) ([]ports.Entry, func()) {
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()

	l.mu.Lock()
	backlog := make([]ports.Entry, len(l.entries))
	copy(backlog, l.entries)
	id := l.addSink(sink)
	l.mu.Unlock()

	return backlog, l.unsubscriber(id)
}

func (l *EventLog) leveled(level ports.LogLevel, message string) {
	locale := l.locales.Locale()
	l.append(level, l.resolve(locale, level), message, locale)
}

func (l *EventLog) resolve(locale string, level ports.LogLevel) string {
	if l.translator == nil {
		return ""
	}
	return l.translator.Translate(locale, level.Key())
}

func (l *EventLog) append(level ports.LogLevel, label, message, locale string) {
	l.notifyMu.Lock()
	defer l.notifyMu.Unlock()

	l.mu.Lock()
	l.seq++
	entry := ports.Entry{
		Seq:     l.seq,
		Level:   level,
		Label:   label,
		Message: message,
		Line:    FormatLine(label, message),
		Locale:  locale,
		At:      l.now(),
	}
	l.entries = append(l.entries, entry)
	if l.maxEntries > 0 && len(l.entries) > l.maxEntries {
		n := copy(l.entries, l.entries[len(l.entries)-l.maxEntries:])
		clear(l.entries[n:])
		l.entries = l.entries[:n]
	}
	sinks := make([]ports.EntrySink, len(l.subs))
	for i, s := range l.subs {
		sinks[i] = s.sink
	}
	l.mu.Unlock()

	for _, sink := range sinks {
		if err := sink.Write(entry); err != nil {
			l.diag.Warn("event log sink failed", "seq", entry.Seq, "error", err)
		}
	}
}

// addSink must be called with mu held.
func (l *EventLog) addSink(sink ports.EntrySink) int {
	l.nextSub++
	l.subs = append(l.subs, subscription{id: l.nextSub, sink: sink})
	return l.nextSub
}

func (l *EventLog) unsubscriber(id int) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			for i, s := range l.subs {
				if s.id == id {
					l.subs = append(l.subs[:i:i], l.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// FormatLine returns the record form of a line: "[<label>]: <message>".
func FormatLine(label, message string) string {
	return "[" + label + "]: " + message
}

var _ ports.Logger = (*EventLog)(nil)
