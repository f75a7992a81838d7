// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/user/ffconsole/pkg/locale"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "FFCONSOLE_"

// Config represents the full configuration for ffconsole.
type Config struct {
	// Locales
	Locale         string `yaml:"locale"`
	FallbackLocale string `yaml:"fallback_locale"`
	LocalesDir     string `yaml:"locales_dir"`

	// Event log
	MaxEntries int    `yaml:"max_entries"`
	LogFile    string `yaml:"log_file"`
	Quiet      bool   `yaml:"quiet"`

	// Operator diagnostics (debug, info, warn, error)
	DiagLevel string `yaml:"diag_level"`

	Server ServerConfig `yaml:"server"`
}

// ServerConfig represents the HTTP display surface settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`

	// CrossOriginIsolation sets COOP/COEP headers so the browser enables
	// SharedArrayBuffer for threaded WebAssembly.
	CrossOriginIsolation bool `yaml:"cross_origin_isolation"`

	// StaticDir overrides the embedded web shell when set.
	StaticDir string `yaml:"static_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Locale:         "zh-CN",
		FallbackLocale: "en",

		MaxEntries: 0,

		DiagLevel: "info",

		Server: ServerConfig{
			Addr:                 ":5173",
			CrossOriginIsolation: true,
		},
	}
}

// LoadFromFile loads configuration from a YAML file on top of Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Load builds the configuration: defaults, then the YAML file when path is
// non-empty, then a ".env" file if present, then FFCONSOLE_* variables.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		var err error
		cfg, err = LoadFromFile(path)
		if err != nil {
			return cfg, err
		}
	}

	// .env is optional when variables come from the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("%w: .env: %v", ErrInvalidConfig, err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalidConfig, EnvPrefix, name, v, err)
		}
		*dst = b
		return nil
	}

	str("LOCALE", &c.Locale)
	str("FALLBACK_LOCALE", &c.FallbackLocale)
	str("LOCALES_DIR", &c.LocalesDir)
	str("LOG_FILE", &c.LogFile)
	str("DIAG_LEVEL", &c.DiagLevel)
	str("ADDR", &c.Server.Addr)
	str("STATIC_DIR", &c.Server.StaticDir)

	if v, ok := lookup(EnvPrefix + "MAX_ENTRIES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sMAX_ENTRIES=%q: %v", ErrInvalidConfig, EnvPrefix, v, err)
		}
		c.MaxEntries = n
	}
	if err := boolean("QUIET", &c.Quiet); err != nil {
		return err
	}
	return boolean("CROSS_ORIGIN_ISOLATION", &c.Server.CrossOriginIsolation)
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if _, err := locale.Canonical(c.Locale); err != nil {
		return fmt.Errorf("%w: locale: %v", ErrInvalidConfig, err)
	}
	if _, err := locale.Canonical(c.FallbackLocale); err != nil {
		return fmt.Errorf("%w: fallback_locale: %v", ErrInvalidConfig, err)
	}
	if c.MaxEntries < 0 {
		return fmt.Errorf("%w: max_entries must be >= 0, got %d", ErrInvalidConfig, c.MaxEntries)
	}
	switch strings.ToLower(c.DiagLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: diag_level %q", ErrInvalidConfig, c.DiagLevel)
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalidConfig)
	}
	return nil
}
