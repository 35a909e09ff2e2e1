package sieve

import (
	"context"
	"log/slog"
	"time"
)

// DefaultHandlerNamespace is stamped on events built from slog records
// when the handler was not given a namespace.
const DefaultHandlerNamespace = "slog"

// Handler adapts log/slog to the pipeline: records logged through a
// slog.Logger built on it become events delivered to an observer.
// Messages are escaped so they render literally, attributes become event
// fields with group names as dotted prefixes, and the record's call site
// travels on the caller key.
type Handler struct {
	target    Observer
	minLevel  slog.Leveler
	namespace string
	prefix    string
	attrs     []prefixedAttr
}

type prefixedAttr struct {
	prefix string
	attr   slog.Attr
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHandlerLevel sets the minimum slog level the handler admits.
// Defaults to slog.LevelInfo.
func WithHandlerLevel(level slog.Leveler) HandlerOption {
	return func(h *Handler) {
		h.minLevel = level
	}
}

// WithHandlerNamespace sets the namespace stamped on converted events.
func WithHandlerNamespace(namespace string) HandlerOption {
	return func(h *Handler) {
		h.namespace = namespace
	}
}

// NewHandler creates a slog.Handler delivering to target. A nil target
// discards events.
func NewHandler(target Observer, opts ...HandlerOption) *Handler {
	if target == nil {
		target = NoOpObserver{}
	}
	h := &Handler{
		target:    target,
		minLevel:  slog.LevelInfo,
		namespace: DefaultHandlerNamespace,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.minLevel.Level()
}

// Handle implements slog.Handler, converting the record to an event.
func (h *Handler) Handle(ctx context.Context, rec slog.Record) error {
	e := make(Event, rec.NumAttrs()+len(h.attrs)+6)
	for _, pa := range h.attrs {
		setAttr(e, pa.prefix, pa.attr)
	}
	rec.Attrs(func(a slog.Attr) bool {
		setAttr(e, h.prefix, a)
		return true
	})
	ts := rec.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	e[KeyTime] = ts
	e[KeyLevel] = levelFromSlog(rec.Level)
	e[KeyNamespace] = h.namespace
	e[KeyFormat] = EscapeFormat(rec.Message)
	if rec.PC != 0 {
		e[KeyCaller] = rec.PC
	}
	h.target.OnEvent(ctx, e)
	return nil
}

// setAttr flattens a into event fields under prefix, expanding groups
// into dotted keys. Empty-keyed attrs are dropped, as slog handlers do.
func setAttr(e Event, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		group := v.Group()
		if len(group) == 0 {
			return
		}
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range group {
			setAttr(e, p, ga)
		}
		return
	}
	if a.Key == "" {
		return
	}
	e[prefix+a.Key] = v.Any()
}

// levelFromSlog buckets a slog level into the nearest pipeline severity.
func levelFromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelInfo:
		return LevelDebug
	case l < slog.LevelWarn:
		return LevelInfo
	case l < slog.LevelError:
		return LevelWarn
	case l < slog.LevelError+4:
		return LevelError
	default:
		return LevelCritical
	}
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	for _, a := range attrs {
		h2.attrs = append(h2.attrs, prefixedAttr{prefix: h.prefix, attr: a})
	}
	return h2
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.prefix = h.prefix + name + "."
	return h2
}

func (h *Handler) clone() *Handler {
	h2 := *h
	h2.attrs = append([]prefixedAttr(nil), h.attrs...)
	return &h2
}

var _ slog.Handler = (*Handler)(nil)
