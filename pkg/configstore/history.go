package configstore

import (
	"fmt"
	"time"
)

// HistoryEntry is a snapshot taken each time the configuration is saved.
type HistoryEntry struct {
	Config    *Config
	Timestamp time.Time
	Comment   string
}

// History is a ring buffer of saved snapshots, oldest first.
type History struct {
	entries []*HistoryEntry
	maxSize int
}

// NewHistory creates a new History with the given maximum size.
func NewHistory(maxSize int) *History {
	return &History{maxSize: maxSize}
}

// Push adds a snapshot, evicting the oldest one when full.
func (h *History) Push(entry *HistoryEntry) {
	h.entries = append(h.entries, entry)
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[1:]
	}
}

// Get returns the nth most recent entry (0 = most recent).
func (h *History) Get(n int) (*HistoryEntry, error) {
	if n < 0 || n >= len(h.entries) {
		return nil, fmt.Errorf("archive %d: %w (have %d entries)", n, ErrNoSnapshot, len(h.entries))
	}
	return h.entries[len(h.entries)-1-n], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// List returns all entries, most recent first.
func (h *History) List() []*HistoryEntry {
	result := make([]*HistoryEntry, len(h.entries))
	for i, entry := range h.entries {
		result[len(h.entries)-1-i] = entry
	}
	return result
}
