// Package e2e contains end-to-end tests for the ffconsole CLI.
// It drives a built binary and has no in-process dependencies on the module.
package e2e

import (
	"bytes"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"testing"
	"time"
)

// skipUnlessE2E skips unless FFCONSOLE_E2E=1.
func skipUnlessE2E(t *testing.T) {
	t.Helper()
	if os.Getenv("FFCONSOLE_E2E") != "1" {
		t.Skip("Skipping E2E test (set FFCONSOLE_E2E=1 to run)")
	}
}

// binary returns FFCONSOLE_BINARY when set, otherwise builds ./cmd/ffconsole
// into a temp directory.
func binary(t *testing.T) string {
	t.Helper()
	if path := os.Getenv("FFCONSOLE_BINARY"); path != "" {
		return path
	}
	name := "ffconsole-test"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	out := filepath.Join(t.TempDir(), name)
	build := exec.Command("go", "build", "-o", out, "./cmd/ffconsole")
	build.Dir = getProjectRoot(t)
	if msg, err := build.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build CLI: %v\n%s", err, msg)
	}
	return out
}

// command isolates the CLI from the developer's environment.
func command(bin string, args ...string) *exec.Cmd {
	cmd := exec.Command(bin, args...)
	cmd.Dir = os.TempDir()
	env := []string{}
	for _, kv := range os.Environ() {
		if !strings.HasPrefix(kv, "FFCONSOLE_") {
			env = append(env, kv)
		}
	}
	cmd.Env = env
	return cmd
}

func TestLogCommand(t *testing.T) {
	skipUnlessE2E(t)
	bin := binary(t)

	logFile := filepath.Join(t.TempDir(), "session.jsonl")
	cmd := command(bin, "--locale", "en", "--log-file", logFile, "log", "--level", "error", "decode", "failed")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("log command failed: %v\nstderr: %s", err, stderr.String())
	}

	if !strings.Contains(stderr.String(), "[Error]: decode failed") {
		t.Errorf("expected error line on stderr, got %q", stderr.String())
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var rec struct {
		Seq   int    `json:"seq"`
		Level string `json:"level"`
		Line  string `json:"line"`
	}
	if err := json.Unmarshal(bytes.TrimSpace(data), &rec); err != nil {
		t.Fatalf("decode JSON line: %v\n%s", err, data)
	}
	if rec.Seq != 1 || rec.Level != "error" || rec.Line != "[Error]: decode failed" {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestLocalesCommand(t *testing.T) {
	skipUnlessE2E(t)
	bin := binary(t)

	out, err := command(bin, "locales").Output()
	if err != nil {
		t.Fatalf("locales command failed: %v", err)
	}
	for _, want := range []string{"信息 / 成功 / 错误", "Info / Success / Error", "情報"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	skipUnlessE2E(t)
	bin := binary(t)

	out, err := command(bin, "--version").Output()
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(string(out), "ffconsole") {
		t.Errorf("unexpected version output %q", out)
	}
}

func TestProbeMissingFile(t *testing.T) {
	skipUnlessE2E(t)
	bin := binary(t)

	cmd := command(bin, "--quiet", "probe", filepath.Join(t.TempDir(), "missing.mp4"))
	err := cmd.Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 1 {
		t.Errorf("expected exit code 1, got %v", err)
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()
	return addr
}

func TestServeCommand(t *testing.T) {
	skipUnlessE2E(t)
	if runtime.GOOS == "windows" {
		t.Skip("serve shutdown relies on SIGINT")
	}
	bin := binary(t)
	addr := freeAddr(t)

	cmd := command(bin, "--quiet", "--locale", "en", "serve", "--addr", addr)
	if err := cmd.Start(); err != nil {
		t.Fatalf("start serve: %v", err)
	}
	defer cmd.Process.Kill()

	base := "http://" + addr
	var resp *http.Response
	var err error
	for i := 0; i < 50; i++ {
		resp, err = http.Get(base + "/")
		if err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server did not come up: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("Cross-Origin-Embedder-Policy"); got != "require-corp" {
		t.Errorf("COEP = %q", got)
	}

	post, err := http.Post(base+"/api/log", "application/json", strings.NewReader(`{"level":"success","message":"ready"}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	post.Body.Close()
	if post.StatusCode != http.StatusNoContent {
		t.Errorf("POST status %d", post.StatusCode)
	}

	snap, err := http.Get(base + "/api/log")
	if err != nil {
		t.Fatalf("GET snapshot: %v", err)
	}
	var body struct {
		Entries []struct {
			Line string `json:"line"`
		} `json:"entries"`
	}
	err = json.NewDecoder(snap.Body).Decode(&body)
	snap.Body.Close()
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	found := false
	for _, e := range body.Entries {
		if e.Line == "[Success]: ready" {
			found = true
		}
	}
	if !found {
		t.Errorf("posted line missing from snapshot: %+v", body.Entries)
	}

	if err := cmd.Process.Signal(syscall.SIGINT); err != nil {
		t.Fatalf("signal: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve exited with %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not exit on SIGINT")
	}
}

// getProjectRoot finds the directory holding go.mod.
func getProjectRoot(t *testing.T) string {
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("Could not find project root (go.mod)")
		}
		dir = parent
	}
}
