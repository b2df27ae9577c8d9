package handler

import (
	"sync/atomic"
	"time"

	"github.com/loghive/loghive/core"
)

const (
	defaultCapacity      = 10000
	defaultBatchSize     = 1000
	defaultFlushInterval = 30 * time.Second

	// enqueueTimeout bounds how long an emitting goroutine may wait on a
	// full queue before the record is dropped.
	enqueueTimeout = 5 * time.Millisecond

	// recvTimeout is the worker's wait quantum; it bounds shutdown and
	// flush-interval latency.
	recvTimeout = 100 * time.Millisecond
)

// batcher is the queue-and-worker core shared by the network handlers. It
// owns a bounded record channel, a single-slot flush signal and one
// background goroutine that groups records into batches for the send
// function. The send function runs only on the worker goroutine.
type batcher struct {
	records  chan *core.Record
	flushSig chan struct{}
	shutdown atomic.Bool
	done     chan struct{}

	batchSize     int
	flushInterval time.Duration
	send          func(batch []*core.Record)
	stats         *Stats
}

func newBatcher(capacity, batchSize int, flushInterval time.Duration, stats *Stats, send func([]*core.Record)) *batcher {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if flushInterval <= 0 {
		flushInterval = defaultFlushInterval
	}
	b := &batcher{
		records:       make(chan *core.Record, capacity),
		flushSig:      make(chan struct{}, 1),
		done:          make(chan struct{}),
		batchSize:     batchSize,
		flushInterval: flushInterval,
		send:          send,
		stats:         stats,
	}
	go b.run()
	return b
}

// enqueue offers a record to the queue, waiting at most enqueueTimeout
// when it is full. On timeout the record is dropped and counted; the
// emitting goroutine is never blocked past the timeout.
func (b *batcher) enqueue(r *core.Record) {
	if b.shutdown.Load() {
		b.stats.dropped.Add(1)
		return
	}
	select {
	case b.records <- r:
		b.stats.enqueued.Add(1)
		b.reclaimIfStopped()
		return
	default:
	}
	t := time.NewTimer(enqueueTimeout)
	defer t.Stop()
	select {
	case b.records <- r:
		b.stats.enqueued.Add(1)
		b.reclaimIfStopped()
	case <-t.C:
		b.stats.dropped.Add(1)
	}
}

// reclaimIfStopped handles the race where a send slips past the shutdown
// check and lands in the channel after the worker's final empty check.
// Once the worker is gone, stranded records are pulled back out and
// counted as drops so the counters stay truthful. While the worker still
// runs it drains the channel itself before exiting, so there is nothing
// to reclaim.
func (b *batcher) reclaimIfStopped() {
	if !b.shutdown.Load() {
		return
	}
	select {
	case <-b.done:
	default:
		return
	}
	for {
		select {
		case <-b.records:
			b.stats.dropped.Add(1)
		default:
			return
		}
	}
}

// signalFlush asserts the out-of-band flush signal. The slot is
// single-entry; a flush request that is already pending absorbs new ones.
func (b *batcher) signalFlush() {
	select {
	case b.flushSig <- struct{}{}:
	default:
	}
}

// close requests shutdown and waits for the worker to drain and exit.
// In-flight sends are not interrupted; shutdown latency is bounded by the
// worker's wait quantum plus one batch send.
func (b *batcher) close() {
	if b.shutdown.CompareAndSwap(false, true) {
		b.signalFlush()
	}
	<-b.done
	b.reclaimIfStopped()
}

// run is the worker loop described by the batching state machine: buffer
// records, send on batch-size, flush signal, interval expiry or shutdown
// drain.
func (b *batcher) run() {
	defer close(b.done)

	buffer := make([]*core.Record, 0, b.batchSize)
	lastSend := time.Now()

	flush := func() {
		if len(buffer) == 0 {
			return
		}
		b.send(buffer)
		buffer = make([]*core.Record, 0, b.batchSize)
		lastSend = time.Now()
	}

	timer := time.NewTimer(recvTimeout)
	defer timer.Stop()

	for {
		if b.shutdown.Load() && len(buffer) == 0 && len(b.records) == 0 {
			return
		}

		flushRequested := false
		select {
		case <-b.flushSig:
			flushRequested = true
		default:
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(recvTimeout)

		select {
		case r := <-b.records:
			buffer = append(buffer, r)
			if len(buffer) >= b.batchSize || flushRequested {
				flush()
			}
		case <-timer.C:
			if flushRequested || b.shutdown.Load() ||
				(len(buffer) > 0 && time.Since(lastSend) >= b.flushInterval) {
				flush()
			}
		}
	}
}
