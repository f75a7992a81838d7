// Package app wires locale selection, catalogs, the event log and its sinks
// from configuration.
package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/user/ffconsole/pkg/adapters/filesink"
	"github.com/user/ffconsole/pkg/adapters/i18nbundle"
	"github.com/user/ffconsole/pkg/adapters/logger"
	"github.com/user/ffconsole/pkg/adapters/nullsink"
	"github.com/user/ffconsole/pkg/adapters/osfilesystem"
	"github.com/user/ffconsole/pkg/config"
	"github.com/user/ffconsole/pkg/eventlog"
	"github.com/user/ffconsole/pkg/locale"
	"github.com/user/ffconsole/pkg/ports"
	"github.com/user/ffconsole/pkg/transcript"
)

// Option customizes App construction.
type Option func(*options)

type options struct {
	console ports.EntrySink
	sinks   []ports.EntrySink
	fs      ports.FileSystem
	diag    *slog.Logger
	logOpts []eventlog.Option
}

// WithConsole replaces the terminal sink chosen from Config.Quiet.
func WithConsole(sink ports.EntrySink) Option {
	return func(o *options) {
		o.console = sink
	}
}

// WithSinks adds sinks to the event log.
func WithSinks(sinks ...ports.EntrySink) Option {
	return func(o *options) {
		o.sinks = append(o.sinks, sinks...)
	}
}

// WithFileSystem sets the filesystem for catalogs, the log file and transcripts.
func WithFileSystem(fs ports.FileSystem) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithSlog sets the operator logger.
func WithSlog(diag *slog.Logger) Option {
	return func(o *options) {
		o.diag = diag
	}
}

// WithEventLogOptions passes extra options to the event log.
func WithEventLogOptions(opts ...eventlog.Option) Option {
	return func(o *options) {
		o.logOpts = append(o.logOpts, opts...)
	}
}

// App is one session: an active locale, its catalogs and the event log.
type App struct {
	cfg        config.Config
	fs         ports.FileSystem
	diag       *slog.Logger
	selector   *locale.Selector
	translator *i18nbundle.Translator
	log        *eventlog.EventLog
}

// New builds an App from cfg.
func New(cfg config.Config, opts ...Option) (*App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fs == nil {
		o.fs = osfilesystem.New()
	}
	if o.diag == nil {
		o.diag = logger.NewSlog(os.Stderr, logger.ParseSlogLevel(cfg.DiagLevel))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	selector, err := locale.New(cfg.Locale, cfg.FallbackLocale)
	if err != nil {
		return nil, fmt.Errorf("locale: %w", err)
	}

	trOpts := []i18nbundle.Option{i18nbundle.WithFileSystem(o.fs)}
	if cfg.LocalesDir != "" {
		trOpts = append(trOpts, i18nbundle.WithDir(cfg.LocalesDir))
	}
	translator, err := i18nbundle.New(selector.Fallback(), trOpts...)
	if err != nil {
		return nil, fmt.Errorf("load catalogs: %w", err)
	}

	console := o.console
	if console == nil {
		if cfg.Quiet {
			console = logger.NewNoop()
		} else {
			console = logger.NewConsole()
		}
	}

	var file ports.EntrySink = nullsink.New()
	if cfg.LogFile != "" {
		file = filesink.New(cfg.LogFile, filesink.FormatForPath(cfg.LogFile), o.fs)
	}

	sinks := append([]ports.EntrySink{console, file}, o.sinks...)
	logOpts := append([]eventlog.Option{
		eventlog.WithMaxEntries(cfg.MaxEntries),
		eventlog.WithSinks(sinks...),
		eventlog.WithSlog(o.diag),
	}, o.logOpts...)

	return &App{
		cfg:        cfg,
		fs:         o.fs,
		diag:       o.diag,
		selector:   selector,
		translator: translator,
		log:        eventlog.New(translator, selector, logOpts...),
	}, nil
}

// Config returns the configuration the App was built from.
func (a *App) Config() config.Config {
	return a.cfg
}

// Log returns the session's event log.
func (a *App) Log() *eventlog.EventLog {
	return a.log
}

// Locale returns the session's locale selector.
func (a *App) Locale() *locale.Selector {
	return a.selector
}

// Translator returns the catalog translator.
func (a *App) Translator() *i18nbundle.Translator {
	return a.translator
}

// Diag returns the operator logger.
func (a *App) Diag() *slog.Logger {
	return a.diag
}

// Transcript snapshots the event log.
func (a *App) Transcript() *transcript.Transcript {
	return transcript.New(a.selector.Locale(), a.log.Records())
}

// SaveTranscript writes a transcript to path, formatted by its extension.
func (a *App) SaveTranscript(path string) error {
	w := transcript.NewWriter(transcript.FormatterForPath(path), a.fs)
	return w.Write(path, a.Transcript())
}
