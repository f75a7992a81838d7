package ports

// Translator resolves a catalog key for a locale.
// Implementations must always return a string: the active locale is tried
// first, then the fallback locale, and finally the key itself.
type Translator interface {
	Translate(locale, key string) string
}

// TranslatorFunc is a function adapter for the Translator interface.
type TranslatorFunc func(locale, key string) string

// Translate implements the Translator interface.
func (f TranslatorFunc) Translate(locale, key string) string {
	return f(locale, key)
}

// LocaleSource reports the currently active locale.
type LocaleSource interface {
	Locale() string
}
