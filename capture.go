package sieve

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// CaptureObserver records every event it sees, for tests and
// diagnostics. Each capture carries a unique id so overlapping captures
// can be told apart. Safe for concurrent use.
type CaptureObserver struct {
	id string

	mu     sync.RWMutex
	events []Event
}

// NewCaptureObserver creates an empty capture.
func NewCaptureObserver() *CaptureObserver {
	return &CaptureObserver{
		id: uuid.Must(uuid.NewV7()).String(),
	}
}

// ID returns the capture's unique identifier.
func (c *CaptureObserver) ID() string {
	return c.id
}

// OnEvent records e.
func (c *CaptureObserver) OnEvent(_ context.Context, e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// Events returns a copy of the recorded events in arrival order.
func (c *CaptureObserver) Events() []Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Event(nil), c.events...)
}

// Len returns how many events were recorded.
func (c *CaptureObserver) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}

// Clear discards the recorded events.
func (c *CaptureObserver) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
}

var _ Observer = (*CaptureObserver)(nil)
