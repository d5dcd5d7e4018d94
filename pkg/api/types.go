// Package api serves the read-only HTTP side of the shell: health,
// Prometheus metrics, saved configuration snapshots and the log buffer.
package api

// Response is the standard JSON response envelope.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// StatusResponse holds process status information.
type StatusResponse struct {
	Uptime     string `json:"uptime"`
	ConfigPath string `json:"config_path"`
	Snapshots  int    `json:"snapshots"`
	LogRecords int    `json:"log_records"`
}

// HistorySummary describes one saved snapshot.
type HistorySummary struct {
	Index    int    `json:"index"`
	Time     string `json:"time"`
	Comment  string `json:"comment,omitempty"`
	Hostname string `json:"hostname"`
}

// LogEntry is one record of the log buffer.
type LogEntry struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"message"`
}
