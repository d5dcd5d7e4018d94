package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/psaab/pnfcli/pkg/configstore"
)

const defaultLogCount = 50

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Success: false, Error: msg})
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, map[string]string{"status": "ok"})
}

func (s *Server) statusHandler(w http.ResponseWriter, _ *http.Request) {
	resp := StatusResponse{
		Uptime: time.Since(s.startTime).Truncate(time.Second).String(),
	}
	if s.store != nil {
		resp.ConfigPath = s.store.Path()
		resp.Snapshots = len(s.store.ListHistory())
	}
	if s.logs != nil {
		resp.LogRecords = s.logs.Len()
	}
	writeOK(w, resp)
}

func (s *Server) startupConfigHandler(w http.ResponseWriter, _ *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "config store not available")
		return
	}
	cfg, err := s.store.Load()
	if err != nil {
		if errors.Is(err, configstore.ErrNoSnapshot) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeOK(w, cfg)
}

func (s *Server) configHistoryHandler(w http.ResponseWriter, _ *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "config store not available")
		return
	}
	entries := s.store.ListHistory()
	out := make([]HistorySummary, len(entries))
	for i, e := range entries {
		out[i] = HistorySummary{
			Index:    i,
			Time:     e.Timestamp.Format(time.RFC3339),
			Comment:  e.Comment,
			Hostname: e.Config.Hostname,
		}
	}
	writeOK(w, out)
}

func (s *Server) configSnapshotHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "config store not available")
		return
	}
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, "snapshot index must be a non-negative integer")
		return
	}
	entry, err := s.store.Snapshot(n)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeOK(w, entry.Config)
}

func (s *Server) logsHandler(w http.ResponseWriter, r *http.Request) {
	if s.logs == nil {
		writeError(w, http.StatusServiceUnavailable, "log buffer not available")
		return
	}
	n := defaultLogCount
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "n must be a positive integer")
			return
		}
		n = parsed
	}
	recs := s.logs.Latest(n)
	out := make([]LogEntry, len(recs))
	for i, rec := range recs {
		out[i] = logEntryFromRecord(rec)
	}
	writeOK(w, out)
}
