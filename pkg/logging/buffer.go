package logging

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Record is a formatted log record kept for "show logging".
type Record struct {
	Time    time.Time
	Level   slog.Level
	Message string // message followed by key=value attributes
}

func (r Record) String() string {
	return fmt.Sprintf("%s %-5s %s", r.Time.Format("Jan _2 15:04:05.000"), r.Level, r.Message)
}

// Buffer is a thread-safe circular buffer of recent records.
type Buffer struct {
	mu    sync.RWMutex
	buf   []Record
	size  int
	head  int // next write position
	count int

	subMu sync.RWMutex
	subs  map[*Subscription]struct{}
}

// Subscription receives records added after it was created.
type Subscription struct {
	C   chan Record
	buf *Buffer
}

// Close unsubscribes. C is not closed.
func (s *Subscription) Close() {
	s.buf.subMu.Lock()
	delete(s.buf.subs, s)
	s.buf.subMu.Unlock()
}

// NewBuffer creates a buffer holding at most size records.
func NewBuffer(size int) *Buffer {
	if size < 1 {
		size = 1
	}
	return &Buffer{
		buf:  make([]Record, size),
		size: size,
		subs: make(map[*Subscription]struct{}),
	}
}

// Add appends a record, overwriting the oldest when full. Subscribers are
// notified without blocking.
func (b *Buffer) Add(rec Record) {
	b.mu.Lock()
	b.buf[b.head] = rec
	b.head = (b.head + 1) % b.size
	if b.count < b.size {
		b.count++
	}
	b.mu.Unlock()

	b.subMu.RLock()
	for sub := range b.subs {
		select {
		case sub.C <- rec:
		default: // drop if subscriber is slow
		}
	}
	b.subMu.RUnlock()
}

// Subscribe returns a Subscription with a channel of bufSize records.
// Call Close when done.
func (b *Buffer) Subscribe(bufSize int) *Subscription {
	if bufSize < 1 {
		bufSize = 64
	}
	sub := &Subscription{C: make(chan Record, bufSize), buf: b}
	b.subMu.Lock()
	b.subs[sub] = struct{}{}
	b.subMu.Unlock()
	return sub
}

// Len returns the number of stored records.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Latest returns the most recent n records, oldest first so they read like
// a log file.
func (b *Buffer) Latest(n int) []Record {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n > b.count {
		n = b.count
	}
	if n <= 0 {
		return nil
	}
	result := make([]Record, n)
	for i := 0; i < n; i++ {
		idx := (b.head - n + i + b.size) % b.size
		result[i] = b.buf[idx]
	}
	return result
}
