// Package logger provides the hierarchical logger registry and dispatch.
//
// Loggers form a dot-separated tree ("svc", "svc.api", "svc.api.auth")
// rooted at "root". A logger with no explicit level inherits its effective
// level from the nearest ancestor that has one; the root defaults to
// Warning. Records pass the logger's filters and then fan out to its own
// handlers, or to the manager's global handler set when it has none.
//
//	mem := handler.NewMemoryHandler()
//	logger.AddHandler(mem)
//	log := logger.GetLogger("svc.worker")
//	log.Warning("disk at %d%%", 91)
//
// Disabled calls are cheap: the level check is atomic loads only and the
// format string is never expanded.
package logger
