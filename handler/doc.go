// Package handler provides the terminal sinks of the loghive pipeline.
//
// Every handler owns an atomic minimum level, an optional formatter, an
// optional filter chain and an optional error callback. Emit never returns
// an error: a handler that fails at runtime reports through its callback
// plus a stderr diagnostic and drops that record for itself only, so one
// broken sink can never disturb its siblings or unwind into the logging
// call site.
//
// Built-in handlers:
//
//   - StreamHandler writes formatted records to stdout or stderr.
//   - FileHandler appends to a file through a buffer, flushing
//     synchronously only for records at or above its flush level.
//   - RotatingFileHandler adds size-triggered rotation with a bounded
//     number of .1..N backups.
//   - HTTPHandler and OTLPHandler batch records onto a bounded queue
//     drained by a background goroutine; enqueueing is bounded by a short
//     timeout and drops under backpressure by design.
//   - MemoryHandler captures records in process for tests.
//   - SlogHandler adapts a Handler to log/slog.Handler so the pipeline can
//     serve as a backend for the standard structured-logging API.
//
// Batched handlers count enqueued/dropped/sent records in a Stats value
// that can be read at runtime or exported through the metrics package.
package handler
