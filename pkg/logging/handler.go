package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
)

// consoleState is shared by a handler and every handler derived from it
// through WithAttrs/WithGroup, so toggling debug affects all loggers.
type consoleState struct {
	debug  atomic.Bool
	mu     sync.Mutex
	out    io.Writer
	buffer *Buffer
}

// ConsoleHandler is an slog.Handler that forwards records to a base handler
// (the log file), copies them into a Buffer and, while debugging is on,
// mirrors them to the terminal.
type ConsoleHandler struct {
	base   slog.Handler
	state  *consoleState
	attrs  []slog.Attr
	groups []string
}

// NewConsoleHandler wraps base. buf may be nil.
func NewConsoleHandler(base slog.Handler, buf *Buffer) *ConsoleHandler {
	return &ConsoleHandler{base: base, state: &consoleState{buffer: buf}}
}

// SetOutput sets the terminal writer used while debugging.
func (h *ConsoleHandler) SetOutput(w io.Writer) {
	h.state.mu.Lock()
	h.state.out = w
	h.state.mu.Unlock()
}

// SetDebug turns terminal mirroring on or off.
func (h *ConsoleHandler) SetDebug(on bool) {
	h.state.debug.Store(on)
}

// Debug reports whether terminal mirroring is on.
func (h *ConsoleHandler) Debug() bool {
	return h.state.debug.Load()
}

// Buffer returns the record buffer, or nil.
func (h *ConsoleHandler) Buffer() *Buffer {
	return h.state.buffer
}

// Enabled implements slog.Handler. Debug records are always accepted while
// mirroring is on.
func (h *ConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.state.debug.Load() {
		return true
	}
	return h.base.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error
	if h.base.Enabled(ctx, r.Level) {
		err = h.base.Handle(ctx, r)
	}

	msg := formatRecord(r, h.attrs, h.groups)
	if h.state.buffer != nil {
		h.state.buffer.Add(Record{Time: r.Time, Level: r.Level, Message: msg})
	}
	if h.state.debug.Load() {
		h.state.mu.Lock()
		if h.state.out != nil {
			fmt.Fprintf(h.state.out, "%s: %s\n", r.Level, msg)
		}
		h.state.mu.Unlock()
	}
	return err
}

// WithAttrs implements slog.Handler.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ConsoleHandler{
		base:   h.base.WithAttrs(attrs),
		state:  h.state,
		attrs:  append(append([]slog.Attr{}, h.attrs...), attrs...),
		groups: h.groups,
	}
}

// WithGroup implements slog.Handler.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	return &ConsoleHandler{
		base:   h.base.WithGroup(name),
		state:  h.state,
		attrs:  h.attrs,
		groups: append(append([]string{}, h.groups...), name),
	}
}

// formatRecord produces a compact text representation of a log record.
func formatRecord(r slog.Record, preAttrs []slog.Attr, groups []string) string {
	var b strings.Builder
	b.WriteString(r.Message)

	for _, a := range preAttrs {
		fmt.Fprintf(&b, " %s=%s", a.Key, a.Value.String())
	}

	r.Attrs(func(a slog.Attr) bool {
		key := a.Key
		if len(groups) > 0 {
			key = strings.Join(groups, ".") + "." + key
		}
		fmt.Fprintf(&b, " %s=%s", key, a.Value.String())
		return true
	})

	return b.String()
}
