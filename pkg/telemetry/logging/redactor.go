package logging

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// minTrackedLen is the shortest value the redactor substitutes. Shorter
// values would match ordinary text far too often to be useful.
const minTrackedLen = 4

// Redactor keeps the set of secret values that must never reach a log record.
// It is safe for concurrent use.
type Redactor struct {
	mu     sync.RWMutex
	values []string // longest first, so overlapping values mask fully
}

// NewRedactor creates an empty redactor.
func NewRedactor() *Redactor {
	return &Redactor{
		values: make([]string, 0, 16),
	}
}

// Track registers a value to be masked. Values shorter than four bytes and
// values already tracked are ignored.
func (r *Redactor) Track(value string) {
	if len(value) < minTrackedLen {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range r.values {
		if v == value {
			return
		}
	}
	r.values = append(r.values, value)
	sort.SliceStable(r.values, func(i, j int) bool {
		return len(r.values[i]) > len(r.values[j])
	})
}

// Len returns the number of tracked values.
func (r *Redactor) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

// Redact replaces every tracked value in s with its preview.
func (r *Redactor) Redact(s string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.values {
		if strings.Contains(s, v) {
			s = strings.ReplaceAll(s, v, Preview(v))
		}
	}
	return s
}

// RedactingHandler is a slog.Handler that masks tracked values in the record
// message and in string, error and stringer attributes before passing the
// record on. Attributes attached with WithAttrs are masked against the values
// tracked at that moment.
type RedactingHandler struct {
	inner    slog.Handler
	redactor *Redactor
}

// NewRedactingHandler wraps inner so that records are redacted with r.
func NewRedactingHandler(inner slog.Handler, r *Redactor) *RedactingHandler {
	return &RedactingHandler{inner: inner, redactor: r}
}

// Enabled reports whether the wrapped handler handles records at level.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle redacts the record and passes it, with ctx unchanged, to the wrapped handler.
func (h *RedactingHandler) Handle(ctx context.Context, record slog.Record) error {
	out := slog.NewRecord(record.Time, record.Level, h.redactor.Redact(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.redactAttr(a))
		return true
	})
	return h.inner.Handle(ctx, out)
}

// WithAttrs returns a handler whose wrapped handler carries the redacted attrs.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.redactAttr(a)
	}
	return &RedactingHandler{inner: h.inner.WithAttrs(redacted), redactor: h.redactor}
}

// WithGroup returns a handler whose wrapped handler opens the group.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{inner: h.inner.WithGroup(name), redactor: h.redactor}
}

func (h *RedactingHandler) redactAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()

	switch v.Kind() {
	case slog.KindString:
		return slog.String(a.Key, h.redactor.Redact(v.String()))
	case slog.KindGroup:
		group := v.Group()
		out := make([]slog.Attr, len(group))
		for i, ga := range group {
			out[i] = h.redactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	case slog.KindAny:
		switch x := v.Any().(type) {
		case error:
			return slog.String(a.Key, h.redactor.Redact(x.Error()))
		case fmt.Stringer:
			return slog.String(a.Key, h.redactor.Redact(x.String()))
		}
	}
	return slog.Attr{Key: a.Key, Value: v}
}
