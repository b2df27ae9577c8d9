package metrics

import (
	"net/http"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loghive/loghive/core"
	"github.com/loghive/loghive/handler"
)

func TestBatchCollectorRegisters(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewBatchCollector()
	require.NoError(t, registry.Register(c))

	var stats handler.Stats
	require.NoError(t, c.Track("http", &stats))
	assert.Error(t, c.Track("http", &stats))

	expected := `
# HELP loghive_handler_records_enqueued_total Total records accepted into a handler's queue
# TYPE loghive_handler_records_enqueued_total counter
loghive_handler_records_enqueued_total{handler="http"} 0
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"loghive_handler_records_enqueued_total"))
}

func TestBatchCollectorTracksHandlerCounters(t *testing.T) {
	mock := httpmock.NewMockTransport()
	mock.RegisterResponder(http.MethodPost, "http://collector.local/logs",
		httpmock.NewStringResponder(http.StatusOK, ""))

	h, err := handler.NewHTTPHandler(handler.HTTPConfig{
		URL:       "http://collector.local/logs",
		BatchSize: 2,
		Client:    &http.Client{Transport: mock},
	})
	require.NoError(t, err)

	c := NewBatchCollector()
	require.NoError(t, c.Track("audit", h.Stats()))

	h.Emit(core.NewRecord("svc", core.Info, "one", nil))
	h.Emit(core.NewRecord("svc", core.Info, "two", nil))
	require.NoError(t, h.Close())

	expected := `
# HELP loghive_handler_batches_sent_total Total batch send attempts made by a handler
# TYPE loghive_handler_batches_sent_total counter
loghive_handler_batches_sent_total{handler="audit"} 1
# HELP loghive_handler_records_enqueued_total Total records accepted into a handler's queue
# TYPE loghive_handler_records_enqueued_total counter
loghive_handler_records_enqueued_total{handler="audit"} 2
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"loghive_handler_batches_sent_total",
		"loghive_handler_records_enqueued_total"))
}

func TestBatchCollectorUntrack(t *testing.T) {
	c := NewBatchCollector()
	var stats handler.Stats
	require.NoError(t, c.Track("tmp", &stats))
	c.Untrack("tmp")

	assert.Zero(t, testutil.CollectAndCount(c))
	require.NoError(t, c.Track("tmp", &stats))
}
