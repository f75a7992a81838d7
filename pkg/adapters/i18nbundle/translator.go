// Package i18nbundle provides a ports.Translator backed by go-i18n catalogs.
//
// Catalogs are one file per locale, named "<tag>.<ext>" or
// "active.<tag>.<ext>", in JSON, TOML or YAML. Nested objects flatten to
// dotted keys, so {"logger": {"info": "Info"}} defines "logger.info".
//
// Values are used literally. They are not executed as go-i18n templates,
// so "{{" in a label is printed as is.
//
// A locale only resolves to its own catalog or to the catalog of its base
// language: "zh-TW" uses "zh-TW" or "zh", never "zh-CN". Anything else
// falls through to the fallback locale.
package i18nbundle

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/nicksnyder/go-i18n/v2/i18n/template"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/user/ffconsole/pkg/adapters/osfilesystem"
	"github.com/user/ffconsole/pkg/ports"
)

//go:embed locales/*
var localeFS embed.FS

// ErrUnsupportedFormat is returned for catalog files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

var formats = map[string]bool{
	".json": true,
	".toml": true,
	".yaml": true,
	".yml":  true,
}

// Option configures a Translator.
type Option func(*options)

type options struct {
	dirs     []string
	files    []string
	fs       ports.FileSystem
	embedded bool
}

// WithDir loads every catalog file found directly in dir.
// Files with other extensions are skipped.
func WithDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.dirs = append(o.dirs, dir)
		}
	}
}

// WithFile loads a single catalog file.
func WithFile(path string) Option {
	return func(o *options) {
		o.files = append(o.files, path)
	}
}

// WithFileSystem sets the filesystem used by WithDir and WithFile.
func WithFileSystem(fsys ports.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

// WithoutEmbedded skips the built-in catalogs.
func WithoutEmbedded() Option {
	return func(o *options) {
		o.embedded = false
	}
}

// Translator resolves keys from a go-i18n bundle.
// Lookup order is requested locale, fallback locale, then the key itself.
type Translator struct {
	bundle   *i18n.Bundle
	fallback language.Tag
	fs       ports.FileSystem

	mu         sync.Mutex
	localizers map[string]*i18n.Localizer
}

// New builds a Translator whose fallback (and bundle default) language is fallback.
// Catalog files that cannot be read or parsed are returned as errors.
func New(fallback string, opts ...Option) (*Translator, error) {
	o := options{embedded: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fs == nil {
		o.fs = osfilesystem.New()
	}

	tag, err := language.Parse(fallback)
	if err != nil {
		return nil, fmt.Errorf("fallback locale %q: %w", fallback, err)
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	bundle.RegisterUnmarshalFunc("yml", yaml.Unmarshal)

	t := &Translator{
		bundle:     bundle,
		fallback:   tag,
		fs:         o.fs,
		localizers: make(map[string]*i18n.Localizer),
	}

	if o.embedded {
		if err := t.loadEmbedded(); err != nil {
			return nil, err
		}
	}
	for _, dir := range o.dirs {
		if err := t.loadDir(dir); err != nil {
			return nil, err
		}
	}
	for _, file := range o.files {
		if err := t.loadFile(file); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Translate implements ports.Translator.
func (t *Translator) Translate(locale, key string) string {
	if key == "" {
		return ""
	}

	for _, requested := range t.chain(locale) {
		loc := requested.String()
		msg, tag, err := t.localizer(loc).LocalizeWithTag(&i18n.LocalizeConfig{
			MessageID:      key,
			TemplateParser: template.IdentityParser{},
		})
		if err == nil && matches(requested, tag) {
			return msg
		}
	}
	return key
}

// chain returns the lookup order for locale: the locale, its base
// language, then the fallback. Unparseable locales go straight to the
// fallback.
func (t *Translator) chain(locale string) []language.Tag {
	var tags []language.Tag
	if requested, err := language.Parse(locale); err == nil && locale != "" {
		tags = append(tags, requested)
		if base, conf := requested.Base(); conf != language.No {
			if b := language.Make(base.String()); b.String() != requested.String() {
				tags = append(tags, b)
			}
		}
	}
	return append(tags, t.fallback)
}

// matches reports whether the catalog tag chosen by the bundle's matcher
// is the requested locale itself or its base language. The matcher also
// picks sibling regions, which must not be used.
func matches(requested, got language.Tag) bool {
	if got == language.Und {
		return false
	}
	if got.String() == requested.String() {
		return true
	}
	base, _ := requested.Base()
	return got.String() == base.String()
}

// Locales returns the tags of all loaded catalogs, sorted.
func (t *Translator) Locales() []string {
	tags := t.bundle.LanguageTags()
	locales := make([]string, 0, len(tags))
	for _, tag := range tags {
		locales = append(locales, tag.String())
	}
	sort.Strings(locales)
	return locales
}

// Fallback returns the fallback locale.
func (t *Translator) Fallback() string {
	return t.fallback.String()
}

func (t *Translator) localizer(locale string) *i18n.Localizer {
	t.mu.Lock()
	defer t.mu.Unlock()
	l, ok := t.localizers[locale]
	if !ok {
		l = i18n.NewLocalizer(t.bundle, locale)
		t.localizers[locale] = l
	}
	return l
}

func (t *Translator) loadEmbedded() error {
	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return fmt.Errorf("read embedded catalogs: %w", err)
	}
	for _, e := range entries {
		name := path.Join("locales", e.Name())
		if _, err := t.bundle.LoadMessageFileFS(localeFS, name); err != nil {
			return fmt.Errorf("load embedded catalog %s: %w", name, err)
		}
	}
	return nil
}

func (t *Translator) loadDir(dir string) error {
	names, err := t.fs.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read catalog directory: %w", err)
	}
	for _, name := range names {
		if !formats[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		if err := t.loadFile(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

func (t *Translator) loadFile(file string) error {
	if !formats[strings.ToLower(filepath.Ext(file))] {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, file)
	}
	data, err := t.fs.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	if _, err := t.bundle.ParseMessageFileBytes(data, filepath.Base(file)); err != nil {
		return fmt.Errorf("parse catalog %s: %w", file, err)
	}
	return nil
}

var _ ports.Translator = (*Translator)(nil)
