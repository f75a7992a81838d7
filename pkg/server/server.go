// Package server exposes the event log over HTTP and serves the web shell.
//
// Routes:
//
//	GET  /api/log         snapshot of the record
//	POST /api/log         append {"level": "info|success|error", "message": "..."}
//	GET  /api/log/stream  server-sent events: backlog, then live entries
//	GET  /api/locale      active, fallback and available locales
//	PUT  /api/locale      switch the active locale {"locale": "..."}
//	GET  /                static web shell
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/user/ffconsole/pkg/ports"
)

//go:embed web/*
var webFS embed.FS

const shutdownTimeout = 5 * time.Second

// EventLog is the part of the event log the server needs.
type EventLog interface {
	Records() []ports.Entry
	Follow(sink ports.EntrySink) ([]ports.Entry, func())
	Append(level ports.LogLevel, message string)
	Label(level ports.LogLevel) string
}

// LocaleSelector reads and switches the active locale.
type LocaleSelector interface {
	Locale() string
	Fallback() string
	Set(locale string) error
}

// Option configures a Server.
type Option func(*Server)

// WithStaticDir serves the web shell from dir instead of the embedded copy.
func WithStaticDir(dir string) Option {
	return func(s *Server) {
		if dir != "" {
			s.static = http.Dir(dir)
		}
	}
}

// WithCrossOriginIsolation toggles the COOP/COEP headers.
func WithCrossOriginIsolation(enabled bool) Option {
	return func(s *Server) {
		s.isolation = enabled
	}
}

// WithAvailableLocales sets the locales listed by GET /api/locale.
func WithAvailableLocales(locales []string) Option {
	return func(s *Server) {
		s.available = locales
	}
}

// WithSlog sets the logger for request diagnostics.
func WithSlog(diag *slog.Logger) Option {
	return func(s *Server) {
		if diag != nil {
			s.diag = diag
		}
	}
}

// WithStreamBuffer sets how many entries may queue per stream client
// before the client is disconnected.
func WithStreamBuffer(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.streamBuffer = n
		}
	}
}

// Server is the HTTP display surface of an event log.
type Server struct {
	log          EventLog
	locales      LocaleSelector
	available    []string
	static       http.FileSystem
	isolation    bool
	streamBuffer int
	diag         *slog.Logger
	handler      http.Handler
}

// New creates a Server. Cross-origin isolation is on by default.
func New(log EventLog, locales LocaleSelector, opts ...Option) *Server {
	s := &Server{
		log:          log,
		locales:      locales,
		isolation:    true,
		streamBuffer: 256,
		diag:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.static == nil {
		s.static = embeddedShell()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/log", s.handleSnapshot)
	mux.HandleFunc("POST /api/log", s.handleAppend)
	mux.HandleFunc("GET /api/log/stream", s.handleStream)
	mux.HandleFunc("GET /api/locale", s.handleGetLocale)
	mux.HandleFunc("PUT /api/locale", s.handleSetLocale)
	mux.Handle("GET /", http.FileServer(s.static))

	var h http.Handler = mux
	if s.isolation {
		h = CrossOriginIsolation(h)
	}
	s.handler = s.logRequests(h)
	return s
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.diag.Info("http server listening", "addr", ln.Addr().String(), "cross_origin_isolation", s.isolation)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.diag.Info("http server stopped")
	return nil
}

// CrossOriginIsolation sets the headers browsers require before enabling
// SharedArrayBuffer, which threaded WebAssembly builds depend on.
func CrossOriginIsolation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Cross-Origin-Opener-Policy", "same-origin")
		h.Set("Cross-Origin-Embedder-Policy", "require-corp")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.diag.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps streaming responses working through the recorder.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func embeddedShell() http.FileSystem {
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		return http.FS(webFS)
	}
	return http.FS(sub)
}
