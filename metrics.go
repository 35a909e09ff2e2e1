package sieve

import (
	"context"
	"sync/atomic"
)

// CountingObserver tallies events by severity. Safe for concurrent use.
type CountingObserver struct {
	total     atomic.Int64
	debug     atomic.Int64
	info      atomic.Int64
	warn      atomic.Int64
	err       atomic.Int64
	critical  atomic.Int64
	unleveled atomic.Int64
}

// NewCountingObserver creates a zeroed counter.
func NewCountingObserver() *CountingObserver {
	return &CountingObserver{}
}

// OnEvent counts e. Events without a valid severity count as unleveled.
func (c *CountingObserver) OnEvent(_ context.Context, e Event) {
	c.total.Add(1)
	lvl, ok := e.Level()
	if !ok {
		c.unleveled.Add(1)
		return
	}
	switch lvl {
	case LevelDebug:
		c.debug.Add(1)
	case LevelInfo:
		c.info.Add(1)
	case LevelWarn:
		c.warn.Add(1)
	case LevelError:
		c.err.Add(1)
	case LevelCritical:
		c.critical.Add(1)
	}
}

// CountSnapshot is a point-in-time reading of a CountingObserver.
type CountSnapshot struct {
	Total     int64 `json:"total"`
	Debug     int64 `json:"debug"`
	Info      int64 `json:"info"`
	Warn      int64 `json:"warn"`
	Error     int64 `json:"error"`
	Critical  int64 `json:"critical"`
	Unleveled int64 `json:"unleveled"`
}

// Snapshot returns the current counts.
func (c *CountingObserver) Snapshot() CountSnapshot {
	return CountSnapshot{
		Total:     c.total.Load(),
		Debug:     c.debug.Load(),
		Info:      c.info.Load(),
		Warn:      c.warn.Load(),
		Error:     c.err.Load(),
		Critical:  c.critical.Load(),
		Unleveled: c.unleveled.Load(),
	}
}

var _ Observer = (*CountingObserver)(nil)
