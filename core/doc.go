// Package core defines the shared types used across the loghive pipeline.
//
// It provides the Level type for severity gating, the Record type that
// represents a single log event, the Filter predicate, and the
// per-goroutine display-name override consulted during record
// construction.
//
// A Record is built once by NewRecord and then only ever read. Handlers
// receive the same *Record pointer during fan-out, possibly on several
// goroutines at once, so nothing downstream may mutate it after
// construction.
package core
