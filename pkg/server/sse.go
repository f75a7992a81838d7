package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/user/ffconsole/pkg/ports"
)

var errStreamLagging = errors.New("stream client lagging")

// streamSink queues entries for one SSE client. A full queue marks the
// client as lagging and the handler drops the connection.
type streamSink struct {
	ch      chan ports.Entry
	lagged  chan struct{}
	lagOnce sync.Once
}

func newStreamSink(buffer int) *streamSink {
	return &streamSink{
		ch:     make(chan ports.Entry, buffer),
		lagged: make(chan struct{}),
	}
}

// Write implements ports.EntrySink. It never blocks the event log.
func (s *streamSink) Write(e ports.Entry) error {
	select {
	case s.ch <- e:
		return nil
	default:
		s.lagOnce.Do(func() { close(s.lagged) })
		return errStreamLagging
	}
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sink := newStreamSink(s.streamBuffer)
	backlog, unsubscribe := s.log.Follow(sink)
	defer unsubscribe()

	for _, e := range backlog {
		if err := writeEvent(w, e); err != nil {
			return
		}
	}
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-sink.lagged:
			s.diag.Warn("dropping lagging stream client", "remote", r.RemoteAddr)
			return
		case e := <-sink.ch:
			if err := writeEvent(w, e); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, e ports.Entry) error {
	data, err := json.Marshal(viewOf(e))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\ndata: %s\n\n", e.Seq, data)
	return err
}
