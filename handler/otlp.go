package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"time"

	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"
	"google.golang.org/protobuf/proto"

	"github.com/loghive/loghive/core"
)

// OTLPConfig configures an OTLPHandler.
type OTLPConfig struct {
	// URL is the OTLP/HTTP logs endpoint.
	URL string
	// Headers are added to every request.
	Headers map[string]string
	// ServiceName becomes the service.name resource attribute.
	ServiceName string
	// Capacity bounds the record queue (default 10000).
	Capacity int
	// BatchSize triggers a send once this many records are buffered
	// (default 1000).
	BatchSize int
	// FlushInterval bounds how long a non-empty buffer may age before it
	// is sent anyway (default 30s).
	FlushInterval time.Duration
	// Client overrides the HTTP client (tests use this).
	Client *http.Client
}

// OTLPHandler ships records as OTLP protobuf log batches over HTTP. The
// queueing and failure behavior is identical to HTTPHandler; only the
// payload differs.
type OTLPHandler struct {
	base
	cfg    OTLPConfig
	client *http.Client
	b      *batcher
	stats  Stats
}

// NewOTLPHandler validates the configuration and starts the background
// sender.
func NewOTLPHandler(cfg OTLPConfig) (*OTLPHandler, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("otlp handler: URL is required")
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, fmt.Errorf("otlp handler: invalid URL %q: %w", cfg.URL, err)
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "loghive"
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	h := &OTLPHandler{
		cfg:    cfg,
		client: client,
	}
	h.initBase()
	h.b = newBatcher(cfg.Capacity, cfg.BatchSize, cfg.FlushInterval, &h.stats, h.sendBatch)
	return h, nil
}

// Emit enqueues the record for the background sender, dropping after a
// bounded wait when the queue is full.
func (h *OTLPHandler) Emit(r *core.Record) {
	if !h.accepts(r) {
		return
	}
	h.b.enqueue(r)
}

// Flush requests an out-of-band batch send.
func (h *OTLPHandler) Flush() { h.b.signalFlush() }

// Close drains the queue and stops the background sender.
func (h *OTLPHandler) Close() error {
	h.b.close()
	return nil
}

// Stats returns the handler's queue counters.
func (h *OTLPHandler) Stats() *Stats { return &h.stats }

// severityNumber maps the pipeline's levels onto OTLP severity numbers.
func severityNumber(level core.Level) logspb.SeverityNumber {
	switch level {
	case core.Debug:
		return logspb.SeverityNumber_SEVERITY_NUMBER_DEBUG
	case core.Info:
		return logspb.SeverityNumber_SEVERITY_NUMBER_INFO
	case core.Warning:
		return logspb.SeverityNumber_SEVERITY_NUMBER_WARN
	case core.Error:
		return logspb.SeverityNumber_SEVERITY_NUMBER_ERROR
	case core.Critical:
		return logspb.SeverityNumber_SEVERITY_NUMBER_FATAL
	default:
		return logspb.SeverityNumber_SEVERITY_NUMBER_UNSPECIFIED
	}
}

func stringValue(s string) *commonpb.AnyValue {
	return &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: s}}
}

func intValue(n int64) *commonpb.AnyValue {
	return &commonpb.AnyValue{Value: &commonpb.AnyValue_IntValue{IntValue: n}}
}

// toOTLP maps a record onto the standard OTLP log-record shape.
func toOTLP(r *core.Record) *logspb.LogRecord {
	nanos := uint64(r.Created * 1e9)
	return &logspb.LogRecord{
		TimeUnixNano:         nanos,
		ObservedTimeUnixNano: nanos,
		SeverityNumber:       severityNumber(r.LevelNo),
		SeverityText:         r.LevelName,
		Body:                 stringValue(r.Message),
		Attributes: []*commonpb.KeyValue{
			{Key: "logger.name", Value: stringValue(r.Name)},
			{Key: "code.filepath", Value: stringValue(r.PathName)},
			{Key: "code.lineno", Value: intValue(int64(r.LineNo))},
			{Key: "code.function", Value: stringValue(r.FuncName)},
		},
	}
}

// sendBatch encodes and POSTs one batch wrapped in the resource/scope
// envelope. Runs on the sender goroutine only.
func (h *OTLPHandler) sendBatch(batch []*core.Record) {
	logRecords := make([]*logspb.LogRecord, 0, len(batch))
	for _, r := range batch {
		logRecords = append(logRecords, toOTLP(r))
	}

	envelope := &logspb.ResourceLogs{
		Resource: &resourcepb.Resource{
			Attributes: []*commonpb.KeyValue{
				{Key: "service.name", Value: stringValue(h.cfg.ServiceName)},
			},
		},
		ScopeLogs: []*logspb.ScopeLogs{{LogRecords: logRecords}},
	}

	payload, err := proto.Marshal(envelope)
	if err != nil {
		h.reportError(fmt.Errorf("otlp handler marshal: %w", err))
		return
	}

	h.stats.batchesSent.Add(1)
	req, err := http.NewRequest(http.MethodPost, h.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		h.stats.sendFailures.Add(1)
		h.reportError(fmt.Errorf("otlp handler request: %w", err))
		return
	}
	req.Header.Set("Content-Type", "application/x-protobuf")
	for k, v := range h.cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.stats.sendFailures.Add(1)
		h.reportError(fmt.Errorf("otlp handler post: %w", err))
		return
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		h.stats.sendFailures.Add(1)
		h.reportError(fmt.Errorf("otlp handler post: unexpected status %s", resp.Status))
	}
}
