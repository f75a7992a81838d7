// Package main provides the CLI entry point for ffconsole.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/ffconsole/pkg/adapters/mp4probe"
	"github.com/user/ffconsole/pkg/app"
	"github.com/user/ffconsole/pkg/config"
	"github.com/user/ffconsole/pkg/ports"
	"github.com/user/ffconsole/pkg/server"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "ffconsole",
		Usage:   l10n.T("Translated status log for browser media tools"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file")},
			&cli.StringFlag{Name: "locale", Aliases: []string{"l"}, Usage: l10n.T("Active locale (e.g. zh-CN, en)")},
			&cli.StringFlag{Name: "fallback-locale", Usage: l10n.T("Locale used when a label is missing")},
			&cli.StringFlag{Name: "locales-dir", Usage: l10n.T("Directory of extra locale catalogs")},
			&cli.StringFlag{Name: "log-file", Usage: l10n.T("Append every line to this file (.jsonl for JSON lines)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: l10n.T("Do not print lines to the terminal")},
			&cli.IntFlag{Name: "max-entries", Usage: l10n.T("Keep at most this many lines in memory (0 = unbounded)")},
		},
		Commands: []*cli.Command{
			logCommand(),
			probeCommand(),
			serveCommand(),
			localesCommand(),
			versionCommand(),
		},
	}
}

// loadConfig applies global flags on top of the file and environment.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("locale") {
		cfg.Locale = c.String("locale")
	}
	if c.IsSet("fallback-locale") {
		cfg.FallbackLocale = c.String("fallback-locale")
	}
	if c.IsSet("locales-dir") {
		cfg.LocalesDir = c.String("locales-dir")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
	if c.IsSet("quiet") {
		cfg.Quiet = c.Bool("quiet")
	}
	if c.IsSet("max-entries") {
		cfg.MaxEntries = c.Int("max-entries")
	}
	return cfg, cfg.Validate()
}

func openSession(c *cli.Context) (*app.App, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}

func logCommand() *cli.Command {
	return &cli.Command{
		Name:      "log",
		Usage:     l10n.T("Append one line to the log"),
		ArgsUsage: "MESSAGE...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "level", Value: "info", Usage: l10n.T("Line level (info, success, error)")},
		},
		Action: func(c *cli.Context) error {
			level, ok := ports.LookupLogLevel(strings.ToLower(c.String("level")))
			if !ok {
				return cli.Exit(l10n.F("Unknown level: %s", c.String("level")), 2)
			}
			a, err := openSession(c)
			if err != nil {
				return err
			}
			a.Log().Append(level, strings.Join(c.Args().Slice(), " "))
			return nil
		},
	}
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     l10n.T("Inspect MP4 files and log their tracks"),
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "transcript", Aliases: []string{"t"}, Usage: l10n.T("Save a transcript (.md, .json or text)")},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit(l10n.T("At least one file is required"), 2)
			}
			a, err := openSession(c)
			if err != nil {
				return err
			}
			failed := probeFiles(a, mp4probe.New(), c.Args().Slice())

			if path := c.String("transcript"); path != "" {
				if err := a.SaveTranscript(path); err != nil {
					a.Log().Error(l10n.F("Failed to write transcript: %s", err))
					return cli.Exit("", 1)
				}
				a.Log().Info(l10n.F("Transcript saved to %s", path))
			}
			if failed > 0 {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// probeFiles logs one line per step and returns the number of failures.
func probeFiles(a *app.App, prober ports.Prober, paths []string) int {
	failed := 0
	for _, path := range paths {
		a.Log().Info(l10n.F("Probing %s", path))
		info, err := prober.Probe(path)
		if err != nil {
			a.Log().Error(l10n.F("Failed to probe %s: %s", path, err))
			failed++
			continue
		}
		a.Log().Success(fmt.Sprintf("%s: %s", path, mp4probe.Summary(info)))
	}
	return failed
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: l10n.T("Serve the log and web shell over HTTP"),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: l10n.T("Listen address")},
			&cli.StringFlag{Name: "static-dir", Usage: l10n.T("Serve the web shell from this directory")},
			&cli.BoolFlag{Name: "no-isolation", Usage: l10n.T("Disable COOP/COEP headers")},
		},
		Action: func(c *cli.Context) error {
			a, err := openSession(c)
			if err != nil {
				return err
			}
			cfg := a.Config().Server
			if c.IsSet("addr") {
				cfg.Addr = c.String("addr")
			}
			if c.IsSet("static-dir") {
				cfg.StaticDir = c.String("static-dir")
			}
			if c.Bool("no-isolation") {
				cfg.CrossOriginIsolation = false
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(a.Log(), a.Locale(),
				server.WithStaticDir(cfg.StaticDir),
				server.WithCrossOriginIsolation(cfg.CrossOriginIsolation),
				server.WithAvailableLocales(a.Translator().Locales()),
				server.WithSlog(a.Diag()),
			)
			a.Log().Info(l10n.F("Serving on %s", cfg.Addr))
			if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
				a.Log().Error(err.Error())
				return cli.Exit("", 1)
			}
			a.Log().Info(l10n.T("Server stopped"))
			return nil
		},
	}
}

func localesCommand() *cli.Command {
	return &cli.Command{
		Name:  "locales",
		Usage: l10n.T("List catalog locales and their level labels"),
		Action: func(c *cli.Context) error {
			a, err := openSession(c)
			if err != nil {
				return err
			}
			active := a.Locale().Locale()
			tr := a.Translator()
			for _, loc := range tr.Locales() {
				mark := " "
				if strings.EqualFold(loc, active) {
					mark = "*"
				}
				fmt.Fprintf(c.App.Writer, "%s %-8s %s / %s / %s\n", mark, loc,
					tr.Translate(loc, ports.KeyInfo),
					tr.Translate(loc, ports.KeySuccess),
					tr.Translate(loc, ports.KeyError),
				)
			}
			return nil
		},
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, l10n.F("ffconsole version %s", version))
			return nil
		},
	}
}
