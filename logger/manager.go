package logger

import (
	"strings"
	"sync"

	"github.com/loghive/loghive/core"
	"github.com/loghive/loghive/handler"
)

// Manager is the logger registry. It owns the root logger, the global
// handler set, and the guarantee that one name maps to one Logger instance
// for the manager's lifetime.
type Manager struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
	root    *Logger

	hmu    sync.RWMutex
	global []handler.Handler
}

// NewManager creates a registry with a root logger at Warning level.
func NewManager() *Manager {
	m := &Manager{loggers: make(map[string]*Logger)}
	m.root = newLogger("root", m, nil)
	m.root.SetLevel(core.Warning)
	return m
}

// Root returns the root logger.
func (m *Manager) Root() *Logger { return m.root }

// GetLogger returns the logger for a dotted name, creating it and any
// missing ancestors first. Concurrent calls with the same name get the
// same instance. The empty name and "root" alias the root logger.
func (m *Manager) GetLogger(name string) *Logger {
	if name == "" || name == "root" {
		return m.root
	}

	m.mu.RLock()
	l, ok := m.loggers[name]
	m.mu.RUnlock()
	if ok {
		return l
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getOrCreateLocked(name)
}

func (m *Manager) getOrCreateLocked(name string) *Logger {
	// "root" is reserved at every depth: a logger named "root.x" must
	// parent to the real root, never to a shadow entry in the map.
	if name == "root" {
		return m.root
	}
	if l, ok := m.loggers[name]; ok {
		return l
	}
	parent := m.root
	if i := strings.LastIndex(name, "."); i > 0 {
		parent = m.getOrCreateLocked(name[:i])
	}
	l := newLogger(name, m, parent)
	m.loggers[name] = l
	return l
}

// AddHandler adds a handler to the global set, reached by every logger
// without handlers of its own and by propagating loggers.
func (m *Manager) AddHandler(h handler.Handler) {
	m.hmu.Lock()
	m.global = append(m.global, h)
	m.hmu.Unlock()
}

// RemoveHandler removes a handler from the global set.
func (m *Manager) RemoveHandler(h handler.Handler) {
	m.hmu.Lock()
	defer m.hmu.Unlock()
	for i, existing := range m.global {
		if existing == h {
			m.global = append(m.global[:i], m.global[i+1:]...)
			return
		}
	}
}

// Handlers returns a snapshot of the global handler set.
func (m *Manager) Handlers() []handler.Handler {
	m.hmu.RLock()
	defer m.hmu.RUnlock()
	out := make([]handler.Handler, len(m.global))
	copy(out, m.global)
	return out
}

// FlushAll flushes every handler known to the manager, global and local.
func (m *Manager) FlushAll() {
	for _, h := range m.allHandlers() {
		h.Flush()
	}
}

// Close flushes and closes every handler known to the manager. Handlers
// attached in multiple places are closed once. The first error is
// returned; closing continues past failures.
func (m *Manager) Close() error {
	var first error
	for _, h := range m.allHandlers() {
		h.Flush()
		if err := h.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// allHandlers collects the global set plus every logger's local handlers,
// deduplicated by handler identity.
func (m *Manager) allHandlers() []handler.Handler {
	seen := make(map[handler.Handler]struct{})
	var out []handler.Handler
	add := func(hs []handler.Handler) {
		for _, h := range hs {
			if _, dup := seen[h]; dup {
				continue
			}
			seen[h] = struct{}{}
			out = append(out, h)
		}
	}

	add(m.Handlers())
	m.mu.RLock()
	loggers := make([]*Logger, 0, len(m.loggers))
	for _, l := range m.loggers {
		loggers = append(loggers, l)
	}
	m.mu.RUnlock()
	for _, l := range loggers {
		add(l.Handlers())
	}
	return out
}
