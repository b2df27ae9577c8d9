package handler

import "sync/atomic"

// Stats tracks what happened to records offered to a batched handler.
// All counters are atomic; a Stats value is shared between the emitting
// goroutines and the background sender.
type Stats struct {
	enqueued     atomic.Uint64
	dropped      atomic.Uint64
	batchesSent  atomic.Uint64
	sendFailures atomic.Uint64
}

// Enqueued returns the number of records accepted onto the queue.
func (s *Stats) Enqueued() uint64 { return s.enqueued.Load() }

// Dropped returns the number of records lost to queue backpressure.
func (s *Stats) Dropped() uint64 { return s.dropped.Load() }

// BatchesSent returns the number of batches handed to the transport,
// successful or not.
func (s *Stats) BatchesSent() uint64 { return s.batchesSent.Load() }

// SendFailures returns the number of batches the transport rejected.
func (s *Stats) SendFailures() uint64 { return s.sendFailures.Load() }

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Enqueued     uint64
	Dropped      uint64
	BatchesSent  uint64
	SendFailures uint64
}

// Snapshot returns a copy of the current counter values.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		Enqueued:     s.enqueued.Load(),
		Dropped:      s.dropped.Load(),
		BatchesSent:  s.batchesSent.Load(),
		SendFailures: s.sendFailures.Load(),
	}
}
