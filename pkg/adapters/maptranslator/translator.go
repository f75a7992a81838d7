// Package maptranslator provides an in-memory catalog translator.
package maptranslator

import (
	"sort"
	"strings"

	"github.com/user/ffconsole/pkg/ports"
)

// Catalog maps locale -> key -> message.
type Catalog map[string]map[string]string

// Translator resolves keys from an in-memory Catalog.
// Lookup order is requested locale, fallback locale, then the key itself.
type Translator struct {
	catalog  Catalog
	fallback string
}

// New creates a Translator over catalog with the given fallback locale.
// Locale names are matched case-insensitively and "_" is treated as "-".
func New(catalog Catalog, fallback string) *Translator {
	normalized := make(Catalog, len(catalog))
	for loc, messages := range catalog {
		key := normalize(loc)
		if normalized[key] == nil {
			normalized[key] = make(map[string]string, len(messages))
		}
		for k, v := range messages {
			normalized[key][k] = v
		}
	}
	return &Translator{
		catalog:  normalized,
		fallback: normalize(fallback),
	}
}

// Translate implements ports.Translator.
func (t *Translator) Translate(locale, key string) string {
	if key == "" {
		return ""
	}
	if msg, ok := t.lookup(normalize(locale), key); ok {
		return msg
	}
	if msg, ok := t.lookup(t.fallback, key); ok {
		return msg
	}
	return key
}

// Locales returns the catalog's locales in sorted order.
func (t *Translator) Locales() []string {
	locales := make([]string, 0, len(t.catalog))
	for loc := range t.catalog {
		locales = append(locales, loc)
	}
	sort.Strings(locales)
	return locales
}

func (t *Translator) lookup(locale, key string) (string, bool) {
	messages, ok := t.catalog[locale]
	if !ok {
		return "", false
	}
	msg, ok := messages[key]
	return msg, ok
}

func normalize(locale string) string {
	return strings.ToLower(strings.ReplaceAll(locale, "_", "-"))
}

var _ ports.Translator = (*Translator)(nil)
