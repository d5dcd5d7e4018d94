package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runDaemon(t *testing.T, dir, script string) string {
	t.Helper()
	var out bytes.Buffer
	d := New(Options{
		ConfigFile:  filepath.Join(dir, "startup-config.json"),
		HistoryFile: filepath.Join(dir, "history.txt"),
		LogFile:     filepath.Join(dir, "pnfcli.log"),
		Plain:       true,
		Stdin:       strings.NewReader(script),
		Stdout:      &out,
	})
	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func TestRunWithoutConfig(t *testing.T) {
	dir := t.TempDir()
	out := runDaemon(t, dir, "exit cli\n")
	if !strings.Contains(out, "Router>") {
		t.Errorf("expected factory prompt, got %q", out)
	}

	logData, err := os.ReadFile(filepath.Join(dir, "pnfcli.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"starting pnfcli", "failed to load config", "shutdown complete"} {
		if !strings.Contains(string(logData), want) {
			t.Errorf("log missing %q:\n%s", want, logData)
		}
	}
}

func TestWriteMemoryPersistsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	runDaemon(t, dir, "enable\nconfigure terminal\nhostname Edge\nexit\nwrite memory\nexit cli\n")

	data, err := os.ReadFile(filepath.Join(dir, "startup-config.json"))
	if err != nil {
		t.Fatalf("startup-config not written: %v", err)
	}
	var saved map[string]any
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("decode startup-config: %v", err)
	}
	if saved["hostname"] != "Edge" {
		t.Errorf("saved hostname = %v, want Edge", saved["hostname"])
	}

	out := runDaemon(t, dir, "exit cli\n")
	if !strings.Contains(out, "Edge>") {
		t.Errorf("second run should start with the saved hostname, got %q", out)
	}
}

func TestRunEndsAtEOF(t *testing.T) {
	out := runDaemon(t, t.TempDir(), "show version")
	if !strings.Contains(out, "Router>") {
		t.Errorf("got %q", out)
	}
}
