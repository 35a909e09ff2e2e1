// Package sieve is a synchronous pipeline for filtering and dispatching
// structured log events.
//
// Events are flat maps that flow from emitters through a Publisher to any
// number of observers. FilteringObserver gates delivery with ordered
// predicates, LevelFilterPredicate resolves per-namespace severity
// thresholds, and SlogObserver hands accepted events to log/slog. All
// delivery is synchronous on the emitting goroutine; the pipeline adds no
// buffering beyond what individual observers document.
package sieve

import (
	"context"
	"fmt"
)

// Observer receives events from the pipeline. Delivery happens on the
// emitting goroutine; an observer that blocks stalls the emitter.
type Observer interface {
	OnEvent(ctx context.Context, e Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, e Event)

// OnEvent calls f(ctx, e).
func (f ObserverFunc) OnEvent(ctx context.Context, e Event) {
	f(ctx, e)
}

// PredicateResult is a predicate's decision about one event. The zero
// value is not a decision; predicates must return ResultYes, ResultNo,
// or ResultMaybe.
type PredicateResult int

const (
	// ResultYes forwards the event without consulting later predicates.
	ResultYes PredicateResult = iota + 1
	// ResultNo drops the event without consulting later predicates.
	ResultNo
	// ResultMaybe defers the decision to the next predicate.
	ResultMaybe
)

// String returns the decision's name.
func (r PredicateResult) String() string {
	switch r {
	case ResultYes:
		return "yes"
	case ResultNo:
		return "no"
	case ResultMaybe:
		return "maybe"
	}
	return fmt.Sprintf("PredicateResult(%d)", int(r))
}

// Predicate decides whether an event passes a FilteringObserver.
// Evaluate must not modify e.
type Predicate interface {
	Evaluate(e Event) PredicateResult
}

// PredicateFunc adapts a function to the Predicate interface.
type PredicateFunc func(e Event) PredicateResult

// Evaluate calls f(e).
func (f PredicateFunc) Evaluate(e Event) PredicateResult {
	return f(e)
}
