package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// bufferSize is the number of records kept for "show logging".
const bufferSize = 200

// Options configures Setup.
type Options struct {
	File     FileConfig
	Level    string    // debug, info, warn or error
	Terminal io.Writer // where records are mirrored while debugging
}

// Setup builds the process logger and installs it with slog.SetDefault.
// The returned closer closes the log file.
func Setup(opts Options) (*slog.Logger, *ConsoleHandler, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, nil, err
	}
	fw, err := NewFileWriter(opts.File)
	if err != nil {
		return nil, nil, nil, err
	}
	base := slog.NewTextHandler(fw, &slog.HandlerOptions{Level: level})
	h := NewConsoleHandler(base, NewBuffer(bufferSize))
	if opts.Terminal != nil {
		h.SetOutput(opts.Terminal)
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger, h, fw, nil
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
