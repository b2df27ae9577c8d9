package handler

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/loghive/loghive/core"
)

// RotatingFileHandler is a FileHandler variant that rotates the log file
// once writing the next record would push it past maxBytes. Backups are
// kept as path.1 (newest) through path.N; with backupCount zero the file
// is truncated in place and no backups exist.
//
// The current size is tracked explicitly rather than re-stat'd per write,
// and the rotate-or-not decision is made under the writer lock so two
// goroutines can never race into a double rotation.
type RotatingFileHandler struct {
	base
	path        string
	maxBytes    int64
	backupCount int

	mu          sync.Mutex
	file        *os.File
	w           *bufio.Writer
	currentSize int64
	closed      bool
}

// NewRotatingFileHandler opens path in append mode and seeds the size
// counter from the existing file, so rotation thresholds survive process
// restarts. maxBytes <= 0 disables rotation.
func NewRotatingFileHandler(path string, maxBytes int64, backupCount int) (*RotatingFileHandler, error) {
	if backupCount < 0 {
		return nil, fmt.Errorf("rotating file handler: negative backup count %d", backupCount)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("rotating file handler: open %s: %w", path, err)
	}
	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}
	h := &RotatingFileHandler{
		path:        path,
		maxBytes:    maxBytes,
		backupCount: backupCount,
		file:        f,
		w:           bufio.NewWriter(f),
		currentSize: size,
	}
	h.initBase()
	return h, nil
}

// Emit writes the record, rotating first if the write would exceed
// maxBytes. A single record larger than maxBytes still rotates and is then
// written whole to the fresh file.
func (h *RotatingFileHandler) Emit(r *core.Record) {
	if !h.accepts(r) {
		return
	}
	// Format outside the lock; only the write+rotate sequence serializes.
	line := h.format(r)
	messageBytes := int64(len(line)) + 1

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		h.reportError(fmt.Errorf("rotating file handler emit: %w", ErrClosed))
		return
	}

	if h.maxBytes > 0 && h.currentSize+messageBytes > h.maxBytes {
		h.rotateLocked()
	}

	if _, err := h.w.WriteString(line + "\n"); err != nil {
		h.reportError(fmt.Errorf("rotating file handler write: %w", err))
		return
	}
	h.currentSize += messageBytes

	if h.shouldFlush(r) {
		if err := h.w.Flush(); err != nil {
			h.reportError(fmt.Errorf("rotating file handler flush: %w", err))
		}
	}
}

// backupPath returns the path of backup index i (path.1, path.2, ...).
func (h *RotatingFileHandler) backupPath(i int) string {
	return h.path + "." + strconv.Itoa(i)
}

// rotateLocked performs the rotation sequence. Caller holds h.mu.
func (h *RotatingFileHandler) rotateLocked() {
	if err := h.w.Flush(); err != nil {
		h.reportError(fmt.Errorf("rotating file handler pre-rotation flush: %w", err))
	}
	h.file.Close()

	// backupCount == 0 keeps no backups: truncate in place.
	if h.backupCount == 0 {
		f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			h.reportError(fmt.Errorf("rotating file handler truncate: %w", err))
			return
		}
		h.file = f
		h.w = bufio.NewWriter(f)
		h.currentSize = 0
		return
	}

	// Defensive cleanup of backups beyond the configured count.
	for i := h.backupCount; ; i++ {
		stale := h.backupPath(i)
		if _, err := os.Stat(stale); err != nil {
			break
		}
		os.Remove(stale)
	}

	// Shift .N -> .N+1 from the highest index down so nothing is
	// overwritten.
	for i := h.backupCount - 1; i >= 1; i-- {
		src := h.backupPath(i)
		if _, err := os.Stat(src); err == nil {
			if err := os.Rename(src, h.backupPath(i+1)); err != nil {
				h.reportError(fmt.Errorf("rotating file handler rename %s: %w", src, err))
			}
		}
	}

	if err := os.Rename(h.path, h.backupPath(1)); err != nil {
		h.reportError(fmt.Errorf("rotating file handler rename %s: %w", h.path, err))
	}

	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		h.reportError(fmt.Errorf("rotating file handler reopen: %w", err))
		return
	}
	h.file = f
	h.w = bufio.NewWriter(f)
	h.currentSize = 0
}

// Flush forces buffered output to disk regardless of the flush level.
func (h *RotatingFileHandler) Flush() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	if err := h.w.Flush(); err != nil {
		h.reportError(fmt.Errorf("rotating file handler flush: %w", err))
	}
}

// Close flushes and closes the file. Subsequent calls are no-ops.
func (h *RotatingFileHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	if err := h.w.Flush(); err != nil {
		h.file.Close()
		return fmt.Errorf("rotating file handler close: %w", err)
	}
	return h.file.Close()
}
