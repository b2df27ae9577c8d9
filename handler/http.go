package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/loghive/loghive/core"
)

// HTTPConfig configures an HTTPHandler. URL is required; zero values for
// the remaining fields select the defaults noted on each field.
type HTTPConfig struct {
	// URL is the endpoint batches are POSTed to.
	URL string
	// Headers are added to every request.
	Headers map[string]string
	// Capacity bounds the record queue (default 10000).
	Capacity int
	// BatchSize triggers a send once this many records are buffered
	// (default 1000).
	BatchSize int
	// FlushInterval bounds how long a non-empty buffer may age before it
	// is sent anyway (default 30s).
	FlushInterval time.Duration
	// GlobalContext keys are merged into every serialized record.
	GlobalContext map[string]any
	// ContextProvider, when set, is called once per batch; its keys are
	// merged into every record of that batch.
	ContextProvider func() map[string]any
	// Transform, when set, may rewrite the serialized batch before it is
	// sent.
	Transform func(batch []map[string]any) []map[string]any
	// Client overrides the HTTP client (tests use this).
	Client *http.Client
}

// HTTPHandler ships records as JSON arrays to a remote endpoint. Emission
// is decoupled from network latency by a bounded queue and a background
// sender; under backpressure records are dropped after a bounded wait
// rather than ever blocking the caller on I/O.
type HTTPHandler struct {
	base
	cfg    HTTPConfig
	client *http.Client
	b      *batcher
	stats  Stats
}

// NewHTTPHandler validates the configuration and starts the background
// sender.
func NewHTTPHandler(cfg HTTPConfig) (*HTTPHandler, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("http handler: URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, fmt.Errorf("http handler: invalid URL %q: %w", cfg.URL, err)
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	h := &HTTPHandler{
		cfg:    cfg,
		client: client,
	}
	h.initBase()
	h.b = newBatcher(cfg.Capacity, cfg.BatchSize, cfg.FlushInterval, &h.stats, h.sendBatch)
	return h, nil
}

// Emit enqueues the record for the background sender. It waits at most a
// few milliseconds on a full queue, then drops. Records at or above the
// flush level additionally assert the flush signal so errors leave the
// process promptly.
func (h *HTTPHandler) Emit(r *core.Record) {
	if !h.accepts(r) {
		return
	}
	h.b.enqueue(r)
	if h.shouldFlush(r) {
		h.b.signalFlush()
	}
}

// Flush requests an out-of-band batch send. It does not wait for the send
// to complete.
func (h *HTTPHandler) Flush() { h.b.signalFlush() }

// Close drains the queue and stops the background sender.
func (h *HTTPHandler) Close() error {
	h.b.close()
	return nil
}

// Stats returns the handler's queue counters.
func (h *HTTPHandler) Stats() *Stats { return &h.stats }

// sendBatch serializes and POSTs one batch. Runs on the sender goroutine
// only. Failures are reported and the batch is dropped; the loop
// continues.
func (h *HTTPHandler) sendBatch(batch []*core.Record) {
	var dynamic map[string]any
	if h.cfg.ContextProvider != nil {
		dynamic = h.cfg.ContextProvider()
	}

	rows := make([]map[string]any, 0, len(batch))
	for _, r := range batch {
		row, err := recordToMap(r)
		if err != nil {
			h.reportError(fmt.Errorf("http handler serialize: %w", err))
			continue
		}
		for k, v := range h.cfg.GlobalContext {
			row[k] = v
		}
		for k, v := range dynamic {
			row[k] = v
		}
		rows = append(rows, row)
	}
	if h.cfg.Transform != nil {
		rows = h.cfg.Transform(rows)
	}
	if len(rows) == 0 {
		return
	}

	body, err := json.Marshal(rows)
	if err != nil {
		h.reportError(fmt.Errorf("http handler marshal batch: %w", err))
		return
	}

	h.stats.batchesSent.Add(1)
	req, err := http.NewRequest(http.MethodPost, h.cfg.URL, bytes.NewReader(body))
	if err != nil {
		h.stats.sendFailures.Add(1)
		h.reportError(fmt.Errorf("http handler request: %w", err))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Batch-ID", uuid.NewString())
	for k, v := range h.cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.stats.sendFailures.Add(1)
		h.reportError(fmt.Errorf("http handler post: %w", err))
		return
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		h.stats.sendFailures.Add(1)
		h.reportError(fmt.Errorf("http handler post: unexpected status %s", resp.Status))
	}
}

// recordToMap serializes a record through its JSON tags into a mutable
// map so context keys can be merged in.
func recordToMap(r *core.Record) (map[string]any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
