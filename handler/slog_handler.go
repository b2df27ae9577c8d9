package handler

import (
	"context"
	"log/slog"

	"github.com/loghive/loghive/core"
)

// SlogHandler adapts a Handler to the log/slog.Handler interface, letting
// the pipeline serve as a drop-in backend for Go's standard structured
// logging API. Attrs become record extra keys; groups become dotted key
// prefixes.
type SlogHandler struct {
	h      Handler
	name   string
	level  core.Level
	attrs  map[string]any
	prefix string
}

// NewSlogHandler wraps h as a slog.Handler. Records are stamped with the
// given logger name and gated at the given minimum level before they reach
// h's own gate.
func NewSlogHandler(h Handler, name string, level core.Level) *SlogHandler {
	return &SlogHandler{h: h, name: name, level: level}
}

// Enabled implements slog.Handler.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogLevel(level) >= s.level
}

// Handle implements slog.Handler by converting the slog record into a
// pipeline record and emitting it.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	var extra map[string]any
	if len(s.attrs) > 0 || record.NumAttrs() > 0 {
		extra = make(map[string]any, len(s.attrs)+record.NumAttrs())
		for k, v := range s.attrs {
			extra[k] = v
		}
		record.Attrs(func(a slog.Attr) bool {
			extra[s.prefix+a.Key] = a.Value.Resolve().Any()
			return true
		})
	}

	r := core.NewRecord(s.name, slogLevel(record.Level), record.Message, extra)
	if !record.Time.IsZero() {
		r.Created = float64(record.Time.UnixNano()) / 1e9
		r.Msecs = float64(record.Time.Nanosecond() / 1e6)
	}
	s.h.Emit(r)
	return nil
}

// WithAttrs implements slog.Handler.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := s.clone()
	for _, a := range attrs {
		next.attrs[s.prefix+a.Key] = a.Value.Resolve().Any()
	}
	return next
}

// WithGroup implements slog.Handler.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	next := s.clone()
	next.prefix = s.prefix + name + "."
	return next
}

func (s *SlogHandler) clone() *SlogHandler {
	attrs := make(map[string]any, len(s.attrs))
	for k, v := range s.attrs {
		attrs[k] = v
	}
	return &SlogHandler{h: s.h, name: s.name, level: s.level, attrs: attrs, prefix: s.prefix}
}

// slogLevel maps slog levels onto the pipeline's severity scale.
func slogLevel(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.Error
	case level >= slog.LevelWarn:
		return core.Warning
	case level >= slog.LevelInfo:
		return core.Info
	default:
		return core.Debug
	}
}
