package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/psaab/pnfcli/pkg/logging"
)

// setSSEHeaders configures the response for Server-Sent Events streaming.
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// writeSSEEvent writes a single SSE event to the response.
func writeSSEEvent(w http.ResponseWriter, id string, event string, data string) {
	fmt.Fprintf(w, "id: %s\n", id)
	if event != "" {
		fmt.Fprintf(w, "event: %s\n", event)
	}
	fmt.Fprintf(w, "data: %s\n\n", data)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// logStreamHandler streams new log records via SSE.
// Supports ?level= (debug, info, warn, error) as a minimum level.
func (s *Server) logStreamHandler(w http.ResponseWriter, r *http.Request) {
	if s.logs == nil {
		writeError(w, http.StatusServiceUnavailable, "log buffer not available")
		return
	}

	minLevel := slog.LevelDebug
	if v := r.URL.Query().Get("level"); v != "" {
		level, err := logging.ParseLevel(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		minLevel = level
	}

	setSSEHeaders(w)

	sub := s.logs.Subscribe(128)
	defer sub.Close()

	var seq uint64
	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case rec := <-sub.C:
			if rec.Level < minLevel {
				continue
			}
			seq++
			data, err := json.Marshal(logEntryFromRecord(rec))
			if err != nil {
				continue
			}
			writeSSEEvent(w, fmt.Sprintf("%d", seq), "log", string(data))
		}
	}
}

func logEntryFromRecord(rec logging.Record) LogEntry {
	return LogEntry{
		Time:    rec.Time.Format(time.RFC3339),
		Level:   rec.Level.String(),
		Message: rec.Message,
	}
}
