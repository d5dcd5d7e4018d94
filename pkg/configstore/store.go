package configstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// ErrNoSnapshot is returned when a requested snapshot does not exist.
var ErrNoSnapshot = errors.New("no saved configuration")

// DefaultPath is the snapshot file used when none is configured.
const DefaultPath = "startup-config.json"

const historySize = 20

// Store reads and writes the JSON snapshot and archives every save.
type Store struct {
	mu          sync.RWMutex
	filePath    string
	history     *History
	archiveDir  string
	maxArchives int
}

// New creates a store backed by filePath.
func New(filePath string) *Store {
	if filePath == "" {
		filePath = DefaultPath
	}
	return &Store{
		filePath: filePath,
		history:  NewHistory(historySize),
	}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.filePath
}

// SetArchiveDir enables writing a timestamped copy of every save into dir,
// keeping at most maxArchives files.
func (s *Store) SetArchiveDir(dir string, maxArchives int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archiveDir = dir
	s.maxArchives = maxArchives
}

// Load reads the snapshot. On any error it still returns the factory
// configuration, so callers can log the error and continue. A missing file
// is reported as ErrNoSnapshot.
func (s *Store) Load() (*Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), fmt.Errorf("read %s: %w", s.filePath, ErrNoSnapshot)
		}
		return Default(), fmt.Errorf("read config: %w", err)
	}
	cfg, err := Unmarshal(data)
	if err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", s.filePath, err)
	}
	return cfg, nil
}

// Save writes cfg to the snapshot file and pushes a copy into the archive.
func (s *Store) Save(cfg *Config, comment string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	s.history.Push(&HistoryEntry{
		Config:    cfg.Clone(),
		Timestamp: time.Now(),
		Comment:   comment,
	})
	if s.archiveDir != "" {
		if err := writeArchive(s.archiveDir, data, s.maxArchives); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot returns the nth most recent saved snapshot (0 = latest).
func (s *Store) Snapshot(n int) (*HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Get(n)
}

// ListHistory returns saved snapshots, most recent first.
func (s *Store) ListHistory() []*HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.List()
}

func writeArchive(dir string, data []byte, maxArchives int) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}
	name := fmt.Sprintf("startup-config-%s.json", time.Now().Format("20060102-150405.000"))
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	rotateArchives(dir, maxArchives)
	return nil
}

// rotateArchives removes the oldest archive files beyond maxArchives.
// Archive names sort chronologically.
func rotateArchives(dir string, maxArchives int) {
	if maxArchives <= 0 {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "startup-config-") && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for len(names) > maxArchives {
		os.Remove(filepath.Join(dir, names[0]))
		names = names[1:]
	}
}
