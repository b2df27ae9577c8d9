// Package metrics exposes the pipeline's handler counters as Prometheus
// metrics.
package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/loghive/loghive/handler"
)

// BatchCollector exports the queue counters of batching handlers. Handlers
// already keep their own atomic counters, so the collector reads them at
// scrape time instead of double counting.
type BatchCollector struct {
	mu       sync.RWMutex
	handlers map[string]*handler.Stats

	enqueued     *prometheus.Desc
	dropped      *prometheus.Desc
	batchesSent  *prometheus.Desc
	sendFailures *prometheus.Desc
}

// NewBatchCollector creates an empty collector. Handlers are attached with
// Track and the collector is registered like any other prometheus.Collector.
func NewBatchCollector() *BatchCollector {
	return &BatchCollector{
		handlers: make(map[string]*handler.Stats),
		enqueued: prometheus.NewDesc(
			"loghive_handler_records_enqueued_total",
			"Total records accepted into a handler's queue",
			[]string{"handler"}, nil,
		),
		dropped: prometheus.NewDesc(
			"loghive_handler_records_dropped_total",
			"Total records dropped because a handler's queue stayed full",
			[]string{"handler"}, nil,
		),
		batchesSent: prometheus.NewDesc(
			"loghive_handler_batches_sent_total",
			"Total batch send attempts made by a handler",
			[]string{"handler"}, nil,
		),
		sendFailures: prometheus.NewDesc(
			"loghive_handler_send_failures_total",
			"Total batch sends that failed",
			[]string{"handler"}, nil,
		),
	}
}

// Track starts exporting the given handler's counters under the given label.
// It returns an error when the label is already taken.
func (c *BatchCollector) Track(name string, stats *handler.Stats) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.handlers[name]; ok {
		return fmt.Errorf("metrics: handler %q already tracked", name)
	}
	c.handlers[name] = stats
	return nil
}

// Untrack stops exporting the named handler.
func (c *BatchCollector) Untrack(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, name)
}

// Describe implements prometheus.Collector.
func (c *BatchCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.enqueued
	ch <- c.dropped
	ch <- c.batchesSent
	ch <- c.sendFailures
}

// Collect implements prometheus.Collector.
func (c *BatchCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for name, stats := range c.handlers {
		snap := stats.Snapshot()
		ch <- prometheus.MustNewConstMetric(c.enqueued, prometheus.CounterValue, float64(snap.Enqueued), name)
		ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(snap.Dropped), name)
		ch <- prometheus.MustNewConstMetric(c.batchesSent, prometheus.CounterValue, float64(snap.BatchesSent), name)
		ch <- prometheus.MustNewConstMetric(c.sendFailures, prometheus.CounterValue, float64(snap.SendFailures), name)
	}
}
