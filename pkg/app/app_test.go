package app

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/user/ffconsole/pkg/config"
	"github.com/user/ffconsole/pkg/mocks"
)

func newTestApp(t *testing.T, cfg config.Config, fs *mocks.FileSystem) (*App, *mocks.EntrySink) {
	t.Helper()
	console := mocks.NewEntrySink()
	a, err := New(cfg,
		WithConsole(console),
		WithFileSystem(fs),
		WithSlog(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return a, console
}

func TestNew_DefaultsUseChineseLabels(t *testing.T) {
	a, console := newTestApp(t, config.Defaults(), mocks.NewFileSystem())

	a.Log().Info("加载中")
	a.Log().Success("完成")
	a.Log().Error("失败")

	want := []string{"[信息]: 加载中", "[成功]: 完成", "[错误]: 失败"}
	if got := a.Log().Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
	if got := console.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("console lines = %v, want %v", got, want)
	}
}

func TestApp_SwitchLocale(t *testing.T) {
	a, _ := newTestApp(t, config.Defaults(), mocks.NewFileSystem())

	a.Log().Info("x")
	if err := a.Locale().Set("en"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	a.Log().Info("x")

	want := []string{"[信息]: x", "[Info]: x"}
	if got := a.Log().Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestApp_LocalesDirFallback(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFile("/locales/fr.json", []byte(`{"logger": {"info": "Info FR"}}`))

	cfg := config.Defaults()
	cfg.Locale = "fr"
	cfg.LocalesDir = "/locales"
	a, _ := newTestApp(t, cfg, fs)

	a.Log().Info("a")
	a.Log().Success("b")

	want := []string{"[Info FR]: a", "[Success]: b"}
	if got := a.Log().Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestApp_LogFileAndRetention(t *testing.T) {
	fs := mocks.NewFileSystem()
	cfg := config.Defaults()
	cfg.Locale = "en"
	cfg.LogFile = "logs/session.log"
	cfg.MaxEntries = 2
	a, _ := newTestApp(t, cfg, fs)

	a.Log().Info("1")
	a.Log().Info("2")
	a.Log().Info("3")

	if a.Log().Len() != 2 {
		t.Errorf("expected 2 retained entries, got %d", a.Log().Len())
	}
	data, ok := fs.GetFile("logs/session.log")
	if !ok {
		t.Fatal("expected log file")
	}
	if string(data) != "[Info]: 1\n[Info]: 2\n[Info]: 3\n" {
		t.Errorf("log file must keep every line, got %q", data)
	}
}

func TestApp_SaveTranscript(t *testing.T) {
	fs := mocks.NewFileSystem()
	cfg := config.Defaults()
	cfg.Locale = "en"
	a, _ := newTestApp(t, cfg, fs)

	a.Log().Info("start")
	a.Log().Success("done")

	if err := a.SaveTranscript("out/session.md"); err != nil {
		t.Fatalf("SaveTranscript failed: %v", err)
	}
	data, _ := fs.GetFile("out/session.md")
	if !strings.Contains(string(data), "| 2 |") || !strings.Contains(string(data), "- Locale: en") {
		t.Errorf("unexpected transcript:\n%s", data)
	}

	tr := a.Transcript()
	if len(tr.Entries) != 2 || tr.Locale != "en" {
		t.Errorf("unexpected transcript %+v", tr)
	}
}

func TestNew_Errors(t *testing.T) {
	cfg := config.Defaults()
	cfg.Locale = ""
	if _, err := New(cfg, WithFileSystem(mocks.NewFileSystem())); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	cfg = config.Defaults()
	cfg.LocalesDir = "/missing"
	if _, err := New(cfg, WithFileSystem(mocks.NewFileSystem())); err == nil {
		t.Error("expected catalog directory error")
	}
}

func TestApp_UncataloguedRegionUsesFallback(t *testing.T) {
	cfg := config.Defaults()
	cfg.Locale = "zh-TW"
	a, _ := newTestApp(t, cfg, mocks.NewFileSystem())

	a.Log().Info("x")
	if err := a.Locale().Set("zh"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	a.Log().Success("y")
	if err := a.Locale().Set("en-GB"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	a.Log().Error("z")

	want := []string{"[Info]: x", "[Success]: y", "[Error]: z"}
	if got := a.Log().Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}
