package handler

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"github.com/loghive/loghive/core"
)

// FileHandler appends formatted records to a file through a buffered
// writer. Flushing is two-tiered: Flush always flushes, while Emit flushes
// synchronously only for records at or above the flush level (default
// Error), so routine messages do not pay a flush per write.
type FileHandler struct {
	base
	mu     sync.Mutex
	file   *os.File
	w      *bufio.Writer
	closed bool
}

// NewFileHandler opens path in append mode, creating it if needed. An
// unusable path fails here, at construction, never at emit time.
func NewFileHandler(path string) (*FileHandler, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("file handler: open %s: %w", path, err)
	}
	h := &FileHandler{
		file: f,
		w:    bufio.NewWriter(f),
	}
	h.initBase()
	return h, nil
}

// Emit writes the record if it passes the level gate and filters.
func (h *FileHandler) Emit(r *core.Record) {
	if !h.accepts(r) {
		return
	}
	line := h.format(r)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		h.reportError(fmt.Errorf("file handler emit: %w", ErrClosed))
		return
	}
	if _, err := h.w.WriteString(line + "\n"); err != nil {
		h.reportError(fmt.Errorf("file handler write: %w", err))
		return
	}
	if h.shouldFlush(r) {
		if err := h.w.Flush(); err != nil {
			h.reportError(fmt.Errorf("file handler flush: %w", err))
		}
	}
}

// Flush forces buffered output to disk regardless of the flush level.
func (h *FileHandler) Flush() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	if err := h.w.Flush(); err != nil {
		h.reportError(fmt.Errorf("file handler flush: %w", err))
	}
}

// Close flushes and closes the file. Subsequent calls are no-ops.
func (h *FileHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	if err := h.w.Flush(); err != nil {
		h.file.Close()
		return fmt.Errorf("file handler close: %w", err)
	}
	return h.file.Close()
}
