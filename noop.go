package sieve

import "context"

// NoOpObserver discards every event.
type NoOpObserver struct{}

// OnEvent does nothing.
func (NoOpObserver) OnEvent(_ context.Context, _ Event) {}

var _ Observer = NoOpObserver{}
