package sieve

import (
	"context"
	"io"
	"sync"
	"time"
)

// WriterObserver renders events as classic log text to an io.Writer.
// Writes are serialized with a mutex so an observer shared across
// goroutines produces whole lines. Write errors are discarded.
type WriterObserver struct {
	mu     sync.Mutex
	w      io.Writer
	layout string
}

// WriterOption configures a WriterObserver.
type WriterOption func(*WriterObserver)

// WithTimeLayout overrides the RFC 3339 timestamp layout.
func WithTimeLayout(layout string) WriterOption {
	return func(o *WriterObserver) {
		o.layout = layout
	}
}

// NewWriterObserver creates an observer writing classic log text to w.
func NewWriterObserver(w io.Writer, opts ...WriterOption) *WriterObserver {
	o := &WriterObserver{w: w, layout: time.RFC3339}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// OnEvent writes e as one line of classic log text.
func (o *WriterObserver) OnEvent(_ context.Context, e Event) {
	text := classicLogText(e, o.layout)
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = io.WriteString(o.w, text)
}

var _ Observer = (*WriterObserver)(nil)
