package logger

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/loghive/loghive/core"
	"github.com/loghive/loghive/handler"
)

// Logger is one named node in the hierarchy. Loggers are created through a
// Manager and are safe for concurrent use; the enabled check is atomic
// loads only, so disabled calls cost no locks and no formatting.
type Logger struct {
	name      string
	manager   *Manager
	parent    *Logger
	level     atomic.Int32
	propagate atomic.Bool

	mu       sync.RWMutex
	handlers []handler.Handler
	filters  []core.Filter
}

func newLogger(name string, manager *Manager, parent *Logger) *Logger {
	l := &Logger{name: name, manager: manager, parent: parent}
	l.propagate.Store(true)
	return l
}

// Name returns the logger's dotted name.
func (l *Logger) Name() string { return l.name }

// SetLevel sets the logger's own level. NotSet makes the logger inherit
// its effective level from the parent chain again.
func (l *Logger) SetLevel(level core.Level) { l.level.Store(int32(level)) }

// Level returns the logger's own level, which may be NotSet.
func (l *Logger) Level() core.Level { return core.Level(l.level.Load()) }

// EffectiveLevel walks up the parent chain until it finds a logger with an
// explicit level. An all-NotSet chain resolves to Warning.
func (l *Logger) EffectiveLevel() core.Level {
	for cur := l; cur != nil; cur = cur.parent {
		if level := core.Level(cur.level.Load()); level != core.NotSet {
			return level
		}
	}
	return core.Warning
}

// IsEnabledFor reports whether a record at the given level would be
// dispatched.
func (l *Logger) IsEnabledFor(level core.Level) bool {
	return level >= l.EffectiveLevel()
}

// SetPropagate controls whether records emitted to this logger's own
// handlers also reach the manager's global handlers. Default true.
func (l *Logger) SetPropagate(propagate bool) { l.propagate.Store(propagate) }

// Propagate returns the propagate flag.
func (l *Logger) Propagate() bool { return l.propagate.Load() }

// AddHandler attaches a handler to this logger. On the root logger this
// adds to the manager's global set instead, so records from every logger
// without handlers of its own reach it.
func (l *Logger) AddHandler(h handler.Handler) {
	if l.manager != nil && l == l.manager.root {
		l.manager.AddHandler(h)
		return
	}
	l.mu.Lock()
	l.handlers = append(l.handlers, h)
	l.mu.Unlock()
}

// RemoveHandler detaches a previously added handler. The root logger
// removes from the manager's global set.
func (l *Logger) RemoveHandler(h handler.Handler) {
	if l.manager != nil && l == l.manager.root {
		l.manager.RemoveHandler(h)
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, existing := range l.handlers {
		if existing == h {
			l.handlers = append(l.handlers[:i], l.handlers[i+1:]...)
			return
		}
	}
}

// Handlers returns a snapshot of the logger's own handlers.
func (l *Logger) Handlers() []handler.Handler {
	if l.manager != nil && l == l.manager.root {
		return l.manager.Handlers()
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]handler.Handler, len(l.handlers))
	copy(out, l.handlers)
	return out
}

// AddFilter attaches a filter. A record is dropped as soon as any filter
// rejects it, before any handler sees it.
func (l *Logger) AddFilter(f core.Filter) {
	l.mu.Lock()
	l.filters = append(l.filters, f)
	l.mu.Unlock()
}

// Debug logs at Debug level with printf-style expansion.
func (l *Logger) Debug(format string, args ...any) { l.Log(core.Debug, format, args...) }

// Info logs at Info level.
func (l *Logger) Info(format string, args ...any) { l.Log(core.Info, format, args...) }

// Warning logs at Warning level.
func (l *Logger) Warning(format string, args ...any) { l.Log(core.Warning, format, args...) }

// Error logs at Error level.
func (l *Logger) Error(format string, args ...any) { l.Log(core.Error, format, args...) }

// Critical logs at Critical level.
func (l *Logger) Critical(format string, args ...any) { l.Log(core.Critical, format, args...) }

// Log dispatches a record at an explicit level. The format string is only
// expanded after the enabled check passes.
func (l *Logger) Log(level core.Level, format string, args ...any) {
	if !l.IsEnabledFor(level) {
		return
	}
	l.dispatch(core.NewRecord(l.name, level, expand(format, args), nil))
}

// LogExtra is Log with structured extra fields attached to the record.
func (l *Logger) LogExtra(level core.Level, extra map[string]any, format string, args ...any) {
	if !l.IsEnabledFor(level) {
		return
	}
	l.dispatch(core.NewRecord(l.name, level, expand(format, args), extra))
}

func expand(format string, args []any) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// dispatch fans a record out to the logger's own handlers, falling back to
// the manager's global set when there are none. With propagate set, records
// handled locally also reach the global set; a handler attached in both
// places still sees the record once.
func (l *Logger) dispatch(r *core.Record) {
	l.mu.RLock()
	for _, f := range l.filters {
		if !f.Allow(r) {
			l.mu.RUnlock()
			return
		}
	}
	locals := make([]handler.Handler, len(l.handlers))
	copy(locals, l.handlers)
	l.mu.RUnlock()

	if len(locals) == 0 {
		if l.manager != nil {
			for _, h := range l.manager.Handlers() {
				h.Emit(r)
			}
		}
		return
	}

	for _, h := range locals {
		h.Emit(r)
	}
	if l.propagate.Load() && l.manager != nil {
		seen := make(map[handler.Handler]struct{}, len(locals))
		for _, h := range locals {
			seen[h] = struct{}{}
		}
		for _, h := range l.manager.Handlers() {
			if _, dup := seen[h]; dup {
				continue
			}
			h.Emit(r)
		}
	}
}

// Flush flushes the logger's own handlers.
func (l *Logger) Flush() {
	for _, h := range l.Handlers() {
		h.Flush()
	}
}
