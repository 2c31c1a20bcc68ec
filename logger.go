package pixart

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled reports false, so callers never
// format the message.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }

var current atomic.Pointer[slog.Logger]

func init() { current.Store(slog.New(discard{})) }

// SetLogger routes the log output of pixart and its sub-packages to l.
// Nothing is logged until it is called; nil silences logging again.
//
// Levels:
//   - Debug: tool events that do nothing, history movement, playback ticks
//   - Info: imports, exports, resizes
//   - Warn: rejected edits such as deleting the last layer
//
// SetLogger may be called while other goroutines log.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discard{})
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger { return current.Load() }

// LogValue summarizes the document for log records.
func (d *Document) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("width", d.width),
		slog.Int("height", d.height),
		slog.Int("layers", len(d.layers)),
		slog.Int("frame", d.current),
		slog.Int("frames", len(d.frames)),
	)
}
