package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Locale != "zh-CN" || cfg.FallbackLocale != "en" {
		t.Errorf("unexpected default locales %q/%q", cfg.Locale, cfg.FallbackLocale)
	}
	if cfg.MaxEntries != 0 {
		t.Errorf("expected unbounded retention by default, got %d", cfg.MaxEntries)
	}
	if !cfg.Server.CrossOriginIsolation {
		t.Error("expected cross-origin isolation enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "ffconsole.yaml")
	data := []byte(`
locale: en
max_entries: 500
log_file: logs/session.log
server:
  addr: 127.0.0.1:8080
  cross_origin_isolation: false
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Locale != "en" {
		t.Errorf("expected locale en, got %q", cfg.Locale)
	}
	if cfg.FallbackLocale != "en" {
		t.Errorf("expected default fallback to survive, got %q", cfg.FallbackLocale)
	}
	if cfg.MaxEntries != 500 {
		t.Errorf("expected max_entries 500, got %d", cfg.MaxEntries)
	}
	if cfg.LogFile != "logs/session.log" {
		t.Errorf("unexpected log_file %q", cfg.LogFile)
	}
	if cfg.Server.Addr != "127.0.0.1:8080" || cfg.Server.CrossOriginIsolation {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(os.TempDir(), "ffconsole-missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "bad.yaml")
	os.WriteFile(path, []byte("locale: [unterminated"), 0644)
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"FFCONSOLE_LOCALE":                 "ja",
		"FFCONSOLE_MAX_ENTRIES":            "10",
		"FFCONSOLE_QUIET":                  "true",
		"FFCONSOLE_ADDR":                   ":9000",
		"FFCONSOLE_CROSS_ORIGIN_ISOLATION": "false",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Defaults()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Locale != "ja" || cfg.MaxEntries != 10 || !cfg.Quiet {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.CrossOriginIsolation {
		t.Errorf("unexpected server config %+v", cfg.Server)
	}
	if cfg.FallbackLocale != "en" {
		t.Errorf("unset variables must keep defaults, got %q", cfg.FallbackLocale)
	}
}

func TestApplyEnv_Invalid(t *testing.T) {
	tests := map[string]string{
		"FFCONSOLE_MAX_ENTRIES": "many",
		"FFCONSOLE_QUIET":       "perhaps",
	}
	for k, v := range tests {
		lookup := func(name string) (string, bool) {
			if name == k {
				return v, true
			}
			return "", false
		}
		cfg := Defaults()
		if err := cfg.ApplyEnv(lookup); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s=%s: expected ErrInvalidConfig, got %v", k, v, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty locale", func(c *Config) { c.Locale = "" }},
		{"bad fallback", func(c *Config) { c.FallbackLocale = "!!" }},
		{"negative max entries", func(c *Config) { c.MaxEntries = -1 }},
		{"bad diag level", func(c *Config) { c.DiagLevel = "loud" }},
		{"empty addr", func(c *Config) { c.Server.Addr = " " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoad_MalformedDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "FFCONSOLE_LOCALE=ja\nFFCONSOLE_LOG_FILE=\"unterminated\nnot-a-variable\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Chdir(dir)

	if _, err := Load(""); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for malformed .env, got %v", err)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	// Register cleanup for the variable godotenv is about to set.
	t.Setenv("FFCONSOLE_LOCALE", "")
	os.Unsetenv("FFCONSOLE_LOCALE")

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("FFCONSOLE_LOCALE=ja\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Locale != "ja" {
		t.Errorf("expected locale from .env, got %q", cfg.Locale)
	}
}

func TestLoad_MissingDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("missing .env must not fail: %v", err)
	}
	if cfg.Locale == "" {
		t.Error("expected defaults")
	}
}
