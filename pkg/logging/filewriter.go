// Package logging wires log/slog for the shell: records go to a rotating
// file, are kept in a small in-memory buffer for "show logging", and are
// mirrored to the terminal while debugging is enabled.
package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultPath is the log file used when none is configured.
const DefaultPath = "pnfcli.log"

// FileWriter is an io.Writer appending to a file that is rotated once it
// grows past MaxSize.
type FileWriter struct {
	mu       sync.Mutex
	file     *os.File
	path     string
	maxSize  int64
	maxFiles int
	written  int64
}

// FileConfig configures a FileWriter.
type FileConfig struct {
	Path     string // default: pnfcli.log
	MaxSize  int64  // default: 1MB
	MaxFiles int    // rotated files kept (default: 3)
}

// NewFileWriter opens (or creates) the log file.
func NewFileWriter(cfg FileConfig) (*FileWriter, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = 1024 * 1024
	}
	maxFiles := cfg.MaxFiles
	if maxFiles <= 0 {
		maxFiles = 3
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	fw := &FileWriter{
		file:     f,
		path:     path,
		maxSize:  maxSize,
		maxFiles: maxFiles,
	}
	if info, err := f.Stat(); err == nil {
		fw.written = info.Size()
	}
	return fw, nil
}

// Write implements io.Writer. A rotation failure leaves the writer closed
// and later writes return an error.
func (fw *FileWriter) Write(p []byte) (int, error) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.file == nil {
		return 0, errors.New("log file closed")
	}
	n, err := fw.file.Write(p)
	fw.written += int64(n)
	if err != nil {
		return n, err
	}
	if fw.written >= fw.maxSize {
		if err := fw.rotate(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Close closes the log file.
func (fw *FileWriter) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.file != nil {
		err := fw.file.Close()
		fw.file = nil
		return err
	}
	return nil
}

func (fw *FileWriter) rotate() error {
	fw.file.Close()
	fw.file = nil

	for i := fw.maxFiles - 1; i > 0; i-- {
		os.Rename(fmt.Sprintf("%s.%d", fw.path, i), fmt.Sprintf("%s.%d", fw.path, i+1))
	}
	os.Rename(fw.path, fw.path+".1")
	os.Remove(fmt.Sprintf("%s.%d", fw.path, fw.maxFiles+1))

	f, err := os.OpenFile(fw.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("reopen rotated log: %w", err)
	}
	fw.file = f
	fw.written = 0
	return nil
}
