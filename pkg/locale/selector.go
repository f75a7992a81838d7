// Package locale holds the active and fallback locales of a session.
package locale

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// ErrInvalidLocale is returned for tags that are not valid BCP 47.
var ErrInvalidLocale = errors.New("invalid locale")

// Selector holds the active locale and the fallback locale.
// It is safe for concurrent use.
type Selector struct {
	mu       sync.RWMutex
	active   string
	fallback string
}

// New creates a Selector. Both tags are canonicalized, so "zh_cn" becomes "zh-CN".
func New(active, fallback string) (*Selector, error) {
	fb, err := Canonical(fallback)
	if err != nil {
		return nil, fmt.Errorf("fallback locale: %w", err)
	}
	act, err := Canonical(active)
	if err != nil {
		return nil, fmt.Errorf("active locale: %w", err)
	}
	return &Selector{
		active:   act,
		fallback: fb,
	}, nil
}

// Locale returns the active locale.
func (s *Selector) Locale() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Fallback returns the fallback locale.
func (s *Selector) Fallback() string {
	return s.fallback
}

// Set switches the active locale.
func (s *Selector) Set(locale string) error {
	tag, err := Canonical(locale)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.active = tag
	s.mu.Unlock()
	return nil
}

// Canonical parses a locale tag and returns its canonical BCP 47 form.
func Canonical(locale string) (string, error) {
	if locale == "" {
		return "", fmt.Errorf("%w: empty tag", ErrInvalidLocale)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidLocale, locale, err)
	}
	return tag.String(), nil
}
