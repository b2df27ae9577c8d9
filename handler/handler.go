package handler

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/loghive/loghive/core"
	"github.com/loghive/loghive/formatter"
)

// ErrClosed is reported through the error callback when a record is
// emitted to a handler that has already been closed.
var ErrClosed = errors.New("handler is closed")

// Handler is a terminal sink for log records.
//
// Emit must never block beyond a short bounded wait and must never fail
// from the caller's point of view; emission-time errors go to the error
// callback and a stderr diagnostic. Flush forces buffered output out
// regardless of the flush level. Close releases resources; it is
// idempotent.
type Handler interface {
	Emit(r *core.Record)
	Flush()
	Close() error

	SetLevel(level core.Level)
	Level() core.Level
	SetFormatter(f formatter.Formatter)
	AddFilter(f core.Filter)
	SetErrorCallback(fn func(error))
}

// base carries the state every handler shares: the atomic level gates and
// the mutex-guarded formatter, filters and error callback. Concrete
// handlers embed it.
type base struct {
	level      atomic.Int32
	flushLevel atomic.Int32

	cfgMu     sync.RWMutex
	formatter formatter.Formatter
	filters   []core.Filter
	errCb     func(error)
}

// initBase initializes b in place, gating at Debug with flush level Error.
func (b *base) initBase() {
	b.level.Store(int32(core.Debug))
	b.flushLevel.Store(int32(core.Error))
}

// SetLevel sets the minimum record level this handler emits.
func (b *base) SetLevel(level core.Level) { b.level.Store(int32(level)) }

// Level returns the handler's minimum level.
func (b *base) Level() core.Level { return core.Level(b.level.Load()) }

// SetFlushLevel sets the level at or above which emission triggers a
// synchronous flush. The default is Error.
func (b *base) SetFlushLevel(level core.Level) { b.flushLevel.Store(int32(level)) }

// FlushLevel returns the current flush threshold.
func (b *base) FlushLevel() core.Level { return core.Level(b.flushLevel.Load()) }

// SetFormatter sets the formatter. Safe to call while the handler is in
// use.
func (b *base) SetFormatter(f formatter.Formatter) {
	b.cfgMu.Lock()
	b.formatter = f
	b.cfgMu.Unlock()
}

// AddFilter appends a handler-local filter, evaluated in registration
// order before the record is written.
func (b *base) AddFilter(f core.Filter) {
	b.cfgMu.Lock()
	b.filters = append(b.filters, f)
	b.cfgMu.Unlock()
}

// SetErrorCallback installs a callback invoked with emission-time errors.
// Errors are additionally written to stderr whether or not a callback is
// set.
func (b *base) SetErrorCallback(fn func(error)) {
	b.cfgMu.Lock()
	b.errCb = fn
	b.cfgMu.Unlock()
}

// accepts applies the level gate and the filter chain.
func (b *base) accepts(r *core.Record) bool {
	if int32(r.LevelNo) < b.level.Load() {
		return false
	}
	b.cfgMu.RLock()
	filters := b.filters
	b.cfgMu.RUnlock()
	for _, f := range filters {
		if !f.Allow(r) {
			return false
		}
	}
	return true
}

// shouldFlush reports whether emitting r must force a synchronous flush.
func (b *base) shouldFlush(r *core.Record) bool {
	return int32(r.LevelNo) >= b.flushLevel.Load()
}

// format renders the record through the configured formatter, falling back
// to the bare message.
func (b *base) format(r *core.Record) string {
	b.cfgMu.RLock()
	f := b.formatter
	b.cfgMu.RUnlock()
	if f != nil {
		return f.Format(r)
	}
	return r.Message
}

// reportError routes an emission-time failure to the callback and the
// stderr diagnostic channel. It never panics and never returns the error
// to the logging call site.
func (b *base) reportError(err error) {
	b.cfgMu.RLock()
	cb := b.errCb
	b.cfgMu.RUnlock()
	if cb != nil {
		cb(err)
	}
	fmt.Fprintf(os.Stderr, "loghive: %v\n", err)
}
