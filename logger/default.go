package logger

import (
	"sync"

	"github.com/loghive/loghive/handler"
)

var (
	defaultMu      sync.RWMutex
	defaultManager = NewManager()
)

// Default returns the process-wide manager used by the package-level
// functions.
func Default() *Manager {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultManager
}

// SetDefault replaces the process-wide manager. Tests use this to swap in
// an isolated registry.
func SetDefault(m *Manager) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultManager = m
}

// GetLogger returns the named logger from the default manager.
func GetLogger(name string) *Logger {
	return Default().GetLogger(name)
}

// Root returns the default manager's root logger.
func Root() *Logger {
	return Default().Root()
}

// AddHandler adds a handler to the default manager's global set.
func AddHandler(h handler.Handler) {
	Default().AddHandler(h)
}

// RemoveHandler removes a handler from the default manager's global set.
func RemoveHandler(h handler.Handler) {
	Default().RemoveHandler(h)
}

// FlushAll flushes every handler known to the default manager.
func FlushAll() {
	Default().FlushAll()
}

// Close flushes and closes every handler known to the default manager.
func Close() error {
	return Default().Close()
}
