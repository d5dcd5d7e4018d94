package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/psaab/pnfcli/pkg/configstore"
	"github.com/psaab/pnfcli/pkg/logging"
)

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	var resp Response
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return w, resp
}

func TestConfigHandlers(t *testing.T) {
	store := configstore.New(filepath.Join(t.TempDir(), "startup-config.json"))
	s := NewServer(Config{Store: store})
	h := s.Handler()

	if w, _ := get(t, h, "/api/v1/config/startup"); w.Code != http.StatusNotFound {
		t.Errorf("startup before save: status %d, want 404", w.Code)
	}

	for _, host := range []string{"R1", "R2"} {
		cfg := configstore.Default()
		cfg.Hostname = host
		if err := store.Save(cfg, "save "+host); err != nil {
			t.Fatal(err)
		}
	}

	w, resp := get(t, h, "/api/v1/config/startup")
	if w.Code != http.StatusOK || !resp.Success {
		t.Fatalf("startup: status %d, %+v", w.Code, resp)
	}
	if data, _ := resp.Data.(map[string]any); data["hostname"] != "R2" {
		t.Errorf("startup hostname = %v, want R2", data["hostname"])
	}

	w, resp = get(t, h, "/api/v1/config/history")
	if w.Code != http.StatusOK {
		t.Fatalf("history: status %d", w.Code)
	}
	list, _ := resp.Data.([]any)
	if len(list) != 2 {
		t.Fatalf("history has %d entries, want 2", len(list))
	}
	if first, _ := list[0].(map[string]any); first["hostname"] != "R2" || first["comment"] != "save R2" {
		t.Errorf("newest entry = %v", first)
	}

	w, resp = get(t, h, "/api/v1/config/history/1")
	if w.Code != http.StatusOK {
		t.Fatalf("snapshot 1: status %d", w.Code)
	}
	if data, _ := resp.Data.(map[string]any); data["hostname"] != "R1" {
		t.Errorf("snapshot 1 hostname = %v, want R1", data["hostname"])
	}

	tests := []struct {
		path string
		want int
	}{
		{"/api/v1/config/history/5", http.StatusNotFound},
		{"/api/v1/config/history/x", http.StatusBadRequest},
		{"/api/v1/config/history/-1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		if w, _ := get(t, h, tt.path); w.Code != tt.want {
			t.Errorf("%s: status %d, want %d", tt.path, w.Code, tt.want)
		}
	}
}

func TestStatusAndLogs(t *testing.T) {
	logs := logging.NewBuffer(8)
	for _, msg := range []string{"a", "b", "c"} {
		logs.Add(logging.Record{Time: time.Now(), Level: slog.LevelInfo, Message: msg})
	}
	store := configstore.New(filepath.Join(t.TempDir(), "cfg.json"))
	h := NewServer(Config{Store: store, Logs: logs}).Handler()

	_, resp := get(t, h, "/api/v1/status")
	data, _ := resp.Data.(map[string]any)
	if data["log_records"] != float64(3) || data["snapshots"] != float64(0) {
		t.Errorf("status = %v", data)
	}
	if !strings.HasSuffix(data["config_path"].(string), "cfg.json") {
		t.Errorf("config_path = %v", data["config_path"])
	}

	_, resp = get(t, h, "/api/v1/logs?n=2")
	entries, _ := resp.Data.([]any)
	if len(entries) != 2 {
		t.Fatalf("got %d log entries, want 2", len(entries))
	}
	if e, _ := entries[1].(map[string]any); e["message"] != "c" || e["level"] != "INFO" {
		t.Errorf("latest entry = %v", e)
	}

	if w, _ := get(t, h, "/api/v1/logs?n=0"); w.Code != http.StatusBadRequest {
		t.Errorf("n=0: status %d, want 400", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "pnfcli_test_total", Help: "Test counter."})
	reg.MustRegister(c)
	c.Inc()

	h := NewServer(Config{Metrics: reg, Auth: &AuthConfig{Tokens: []string{"t"}}}).Handler()
	w, _ := get(t, h, "/metrics")
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "pnfcli_test_total 1") {
		t.Errorf("metrics body missing counter: %s", w.Body.String())
	}

	if w, _ := get(t, h, "/api/v1/status"); w.Code != http.StatusUnauthorized {
		t.Errorf("status without token: %d, want 401", w.Code)
	}
}

func TestHealthWithoutMetrics(t *testing.T) {
	h := NewServer(Config{}).Handler()
	if w, resp := get(t, h, "/health"); w.Code != http.StatusOK || !resp.Success {
		t.Errorf("health: status %d, %+v", w.Code, resp)
	}
	if w, _ := get(t, h, "/metrics"); w.Code != http.StatusNotFound {
		t.Errorf("metrics without gatherer: status %d, want 404", w.Code)
	}
}
