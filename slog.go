package sieve

import (
	"context"
	"log/slog"
	"runtime"
	"slices"
	"time"
)

// DefaultStackDepth is how many frames SlogObserver walks up to find the
// emitting call site when an event carries no caller key. The default
// assumes delivery through a publisher and one filtering layer.
const DefaultStackDepth = 4

// SlogObserver hands events to a log/slog handler.
//
// The handler's level gate runs first, so events the sink would drop are
// never formatted. The message is the event's rendered template; the
// namespace, source, and failure travel as attributes alongside every
// user field. Severities map to slog levels by fixed table, with
// LevelCritical above slog.LevelError and unleveled events at
// slog.LevelInfo.
//
// The handler runs on the emitting goroutine; wrap slow sinks
// accordingly.
type SlogObserver struct {
	handler slog.Handler
	depth   int
}

// SlogOption configures a SlogObserver.
type SlogOption func(*SlogObserver)

// WithStackDepth overrides DefaultStackDepth for events without a caller
// key.
func WithStackDepth(depth int) SlogOption {
	return func(o *SlogObserver) {
		o.depth = depth
	}
}

// NewSlogObserver creates an observer emitting to logger, or to
// slog.Default() when logger is nil.
func NewSlogObserver(logger *slog.Logger, opts ...SlogOption) *SlogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	o := &SlogObserver{
		handler: logger.Handler(),
		depth:   DefaultStackDepth,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OnEvent forwards e to the slog handler if the handler's level gate
// admits it.
func (o *SlogObserver) OnEvent(ctx context.Context, e Event) {
	lvl := slogEventLevel(e)
	if !o.handler.Enabled(ctx, lvl) {
		return
	}
	ts, ok := e.Timestamp()
	if !ok {
		ts = time.Now()
	}
	rec := slog.NewRecord(ts, lvl, FormatEvent(e), o.callerPC(e))
	if ns, ok := e.Namespace(); ok {
		rec.AddAttrs(slog.String("namespace", ns))
	}
	if src, ok := e[KeySource]; ok && src != nil {
		rec.AddAttrs(slog.Any("source", src))
	}
	if err := e.Failure(); err != nil {
		rec.AddAttrs(slog.Any("failure", err))
	}
	for _, k := range userKeys(e) {
		rec.AddAttrs(slog.Any(k, e[k]))
	}
	_ = o.handler.Handle(ctx, rec)
}

// slogEventLevel maps the event's severity for slog. Events without a
// valid severity log at INFO rather than being dropped.
func slogEventLevel(e Event) slog.Level {
	lvl, ok := e.Level()
	if !ok {
		return slog.LevelInfo
	}
	return lvl.SlogLevel()
}

// callerPC prefers the program counter stamped on the event and falls
// back to walking the stack.
func (o *SlogObserver) callerPC(e Event) uintptr {
	if pc, ok := e[KeyCaller].(uintptr); ok {
		return pc
	}
	var pcs [1]uintptr
	if runtime.Callers(o.depth+2, pcs[:]) == 0 {
		return 0
	}
	return pcs[0]
}

// userKeys returns the event's non-reserved keys, sorted for stable
// attribute order.
func userKeys(e Event) []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		switch k {
		case KeyLevel, KeyNamespace, KeyTrace, KeyFormat, KeyTime, KeySource, KeyFailure, KeyCaller:
		default:
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

var _ Observer = (*SlogObserver)(nil)
