package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/user/ffconsole/pkg/ports"
)

const maxBodyBytes = 64 << 10

// entryView is the wire form of one entry.
type entryView struct {
	Seq     int    `json:"seq"`
	Level   string `json:"level"`
	Label   string `json:"label"`
	Message string `json:"message"`
	Line    string `json:"line"`
	Locale  string `json:"locale"`
	At      string `json:"at"`
}

func viewOf(e ports.Entry) entryView {
	return entryView{
		Seq:     e.Seq,
		Level:   e.Level.String(),
		Label:   e.Label,
		Message: e.Message,
		Line:    e.Line,
		Locale:  e.Locale,
		At:      e.At.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

type snapshotResponse struct {
	Locale  string      `json:"locale"`
	Entries []entryView `json:"entries"`
}

type appendRequest struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type localeRequest struct {
	Locale string `json:"locale"`
}

type localeResponse struct {
	Locale    string            `json:"locale"`
	Fallback  string            `json:"fallback"`
	Available []string          `json:"available"`
	Labels    map[string]string `json:"labels"`
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	records := s.log.Records()
	resp := snapshotResponse{
		Locale:  s.locales.Locale(),
		Entries: make([]entryView, 0, len(records)),
	}
	for _, e := range records {
		resp.Entries = append(resp.Entries, viewOf(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	var req appendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	level, ok := ports.LookupLogLevel(strings.ToLower(req.Level))
	if !ok {
		writeError(w, http.StatusBadRequest, "level must be one of info, success, error")
		return
	}
	s.log.Append(level, req.Message)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetLocale(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.localeState())
}

func (s *Server) handleSetLocale(w http.ResponseWriter, r *http.Request) {
	var req localeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.locales.Set(req.Locale); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.diag.Info("locale switched", "locale", s.locales.Locale())
	writeJSON(w, http.StatusOK, s.localeState())
}

func (s *Server) localeState() localeResponse {
	available := s.available
	if available == nil {
		available = []string{}
	}
	labels := make(map[string]string, 3)
	for _, level := range []ports.LogLevel{ports.LevelInfo, ports.LevelSuccess, ports.LevelError} {
		labels[level.String()] = s.log.Label(level)
	}
	return localeResponse{
		Locale:    s.locales.Locale(),
		Fallback:  s.locales.Fallback(),
		Available: available,
		Labels:    labels,
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
