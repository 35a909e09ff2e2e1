package sieve

import "context"

// DefaultRingSize is the capacity of the pre-start buffer the global
// beginner keeps.
const DefaultRingSize = 1024

// RingBufferObserver retains the most recent events, evicting the
// oldest once full. Not safe for concurrent use.
type RingBufferObserver struct {
	buf   []Event
	next  int
	count int
}

// NewRingBufferObserver creates a ring of the given capacity. Sizes
// below one fall back to DefaultRingSize.
func NewRingBufferObserver(size int) *RingBufferObserver {
	if size < 1 {
		size = DefaultRingSize
	}
	return &RingBufferObserver{buf: make([]Event, size)}
}

// OnEvent retains e, evicting the oldest retained event when full.
func (b *RingBufferObserver) OnEvent(_ context.Context, e Event) {
	b.buf[b.next] = e
	b.next = (b.next + 1) % len(b.buf)
	if b.count < len(b.buf) {
		b.count++
	}
}

// Len returns how many events are retained.
func (b *RingBufferObserver) Len() int {
	return b.count
}

// Events returns the retained events, oldest first.
func (b *RingBufferObserver) Events() []Event {
	events := make([]Event, 0, b.count)
	start := b.next - b.count
	if start < 0 {
		start += len(b.buf)
	}
	for i := 0; i < b.count; i++ {
		events = append(events, b.buf[(start+i)%len(b.buf)])
	}
	return events
}

// Clear drops all retained events.
func (b *RingBufferObserver) Clear() {
	clear(b.buf)
	b.next = 0
	b.count = 0
}

// ReplayTo redelivers the retained events, oldest first, to o.
func (b *RingBufferObserver) ReplayTo(ctx context.Context, o Observer) {
	for _, e := range b.Events() {
		o.OnEvent(ctx, e)
	}
}

var _ Observer = (*RingBufferObserver)(nil)
