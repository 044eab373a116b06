package log

import (
	"context"
	"io"
	"log/slog"
)

// DefaultMaxValueLen is the rune length above which string attribute values
// are truncated. Policy documents run to tens of thousands of characters;
// a log line never needs more than a preview.
const DefaultMaxValueLen = 256

// TruncationMarker is appended to truncated values.
const TruncationMarker = "…[truncated]"

// TruncateHandler wraps an slog.Handler and truncates oversized string
// attribute values before they reach the underlying handler. It intercepts
// records at the handler level so it composes with any output format and
// with every logger derived via With.
type TruncateHandler struct {
	handler slog.Handler
	maxLen  int
}

// TruncateHandlerOption configures a TruncateHandler.
type TruncateHandlerOption func(*TruncateHandler)

// WithMaxValueLen overrides the truncation threshold, counted in runes.
func WithMaxValueLen(n int) TruncateHandlerOption {
	return func(h *TruncateHandler) {
		if n > 0 {
			h.maxLen = n
		}
	}
}

// NewTruncateHandler creates a TruncateHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is wrapped.
func NewTruncateHandler(handler slog.Handler, opts ...TruncateHandlerOption) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	h := &TruncateHandler{handler: handler, maxLen: DefaultMaxValueLen}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle truncates the record's attributes and passes it on.
func (h *TruncateHandler) Handle(ctx context.Context, r slog.Record) error {
	truncated := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		truncated.AddAttrs(h.truncateAttr(a))
		return true
	})
	return h.handler.Handle(ctx, truncated)
}

// WithAttrs returns a new handler with the given attributes added,
// truncated first.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	truncated := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		truncated[i] = h.truncateAttr(a)
	}
	return &TruncateHandler{handler: h.handler.WithAttrs(truncated), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// truncateAttr truncates a single attribute, recursively handling groups.
func (h *TruncateHandler) truncateAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		truncated := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			truncated[i] = h.truncateAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(truncated...)}
	}

	if a.Value.Kind() != slog.KindString {
		return a
	}

	runes := []rune(a.Value.String())
	if len(runes) <= h.maxLen {
		return a
	}
	return slog.String(a.Key, string(runes[:h.maxLen])+TruncationMarker)
}

// NewLogger creates an slog.Logger with text output and value truncation.
// Verbose selects LevelDebug, otherwise LevelWarn; the same switch the
// --verbose flag maps to.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewTruncateHandler(textHandler))
}
