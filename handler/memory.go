package handler

import (
	"strings"
	"sync"

	"github.com/loghive/loghive/core"
)

// MemoryHandler captures records in process, in emission order. It exists
// for tests and log-capture fixtures; there is no I/O and no background
// goroutine.
type MemoryHandler struct {
	base
	mu      sync.Mutex
	records []*core.Record
}

// NewMemoryHandler creates an empty MemoryHandler.
func NewMemoryHandler() *MemoryHandler {
	h := &MemoryHandler{}
	h.initBase()
	return h
}

// Emit appends the record if it passes the level gate and filters.
func (h *MemoryHandler) Emit(r *core.Record) {
	if !h.accepts(r) {
		return
	}
	h.mu.Lock()
	h.records = append(h.records, r)
	h.mu.Unlock()
}

// Flush is a no-op.
func (h *MemoryHandler) Flush() {}

// Close is a no-op; captured records stay readable.
func (h *MemoryHandler) Close() error { return nil }

// Records returns a snapshot of the captured records.
func (h *MemoryHandler) Records() []*core.Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*core.Record, len(h.records))
	copy(out, h.records)
	return out
}

// Text returns the captured records rendered through the configured
// formatter (or their raw messages), joined by newlines.
func (h *MemoryHandler) Text() string {
	records := h.Records()
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = h.format(r)
	}
	return strings.Join(lines, "\n")
}

// RecordTuple is the (logger name, level, message) triple log-capture
// fixtures compare against.
type RecordTuple struct {
	Name    string
	Level   core.Level
	Message string
}

// RecordTuples returns the captured records as comparison tuples, in
// emission order.
func (h *MemoryHandler) RecordTuples() []RecordTuple {
	records := h.Records()
	out := make([]RecordTuple, len(records))
	for i, r := range records {
		out[i] = RecordTuple{Name: r.Name, Level: r.LevelNo, Message: r.Message}
	}
	return out
}

// Clear discards all captured records.
func (h *MemoryHandler) Clear() {
	h.mu.Lock()
	h.records = nil
	h.mu.Unlock()
}
