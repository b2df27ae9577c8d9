package handler

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/loghive/loghive/core"
)

// StreamDest selects the destination of a StreamHandler.
type StreamDest int

const (
	// Stdout writes to standard output.
	Stdout StreamDest = iota
	// Stderr writes to standard error.
	Stderr
)

// StreamHandler writes one formatted line per record to stdout or stderr.
type StreamHandler struct {
	base
	mu sync.Mutex
	w  io.Writer
}

// NewStreamHandler creates a handler writing to the given destination.
func NewStreamHandler(dest StreamDest) *StreamHandler {
	w := io.Writer(os.Stdout)
	if dest == Stderr {
		w = os.Stderr
	}
	return NewStreamWriterHandler(w)
}

// NewStreamWriterHandler creates a StreamHandler over an arbitrary writer.
// Used by tests to capture output.
func NewStreamWriterHandler(w io.Writer) *StreamHandler {
	h := &StreamHandler{w: w}
	h.initBase()
	return h
}

// Emit writes the record if it passes the level gate and filters.
func (h *StreamHandler) Emit(r *core.Record) {
	if !h.accepts(r) {
		return
	}
	line := h.format(r)

	h.mu.Lock()
	_, err := fmt.Fprintln(h.w, line)
	h.mu.Unlock()

	if err != nil {
		h.reportError(fmt.Errorf("stream handler write: %w", err))
	}
}

// Flush is a no-op; stream writes are unbuffered.
func (h *StreamHandler) Flush() {}

// Close is a no-op; the handler does not own its stream.
func (h *StreamHandler) Close() error { return nil }
