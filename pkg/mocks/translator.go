package mocks

import (
	"sync"

	"github.com/user/ffconsole/pkg/ports"
)

// Translator is a mock implementation of ports.Translator.
// Without TranslateFunc it returns "<locale>:<key>".
type Translator struct {
	mu    sync.Mutex
	calls []TranslateCall

	TranslateFunc func(locale, key string) string
}

// TranslateCall records one Translate invocation.
type TranslateCall struct {
	Locale string
	Key    string
}

func (m *Translator) Translate(locale, key string) string {
	m.mu.Lock()
	m.calls = append(m.calls, TranslateCall{Locale: locale, Key: key})
	m.mu.Unlock()
	if m.TranslateFunc != nil {
		return m.TranslateFunc(locale, key)
	}
	return locale + ":" + key
}

// Calls returns the recorded invocations (for test verification).
func (m *Translator) Calls() []TranslateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]TranslateCall, len(m.calls))
	copy(out, m.calls)
	return out
}

var _ ports.Translator = (*Translator)(nil)
