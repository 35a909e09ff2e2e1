package sieve

import (
	"context"
	"fmt"
	"reflect"
	"time"
)

// PublisherNamespace is the namespace on events a Publisher emits about
// its own operation, currently only observer failure reports.
const PublisherNamespace = "sieve.publisher"

// Publisher fans events out to a set of observers, synchronously and in
// registration order. A failing observer does not stop delivery: panics
// are contained, the remaining observers still receive the event, and
// the failure is then reported to every observer except the one that
// failed. The failing observer stays registered.
//
// Membership changes are not synchronized with dispatch; settle the
// observer set before publishing from multiple goroutines.
type Publisher struct {
	observers []Observer
}

// NewPublisher creates a publisher over the given observers. Nil
// observers are dropped.
func NewPublisher(observers ...Observer) *Publisher {
	p := &Publisher{}
	for _, o := range observers {
		p.AddObserver(o)
	}
	return p
}

// AddObserver appends o to the delivery order. Nil is ignored. Adding an
// observer twice delivers each event to it twice.
func (p *Publisher) AddObserver(o Observer) {
	if o == nil {
		return
	}
	p.observers = append(p.observers, o)
}

// RemoveObserver removes the first registered observer equal to o.
// Removing an observer that was never added is a no-op.
func (p *Publisher) RemoveObserver(o Observer) {
	for i, existing := range p.observers {
		if observersEqual(existing, o) {
			p.observers = append(p.observers[:i], p.observers[i+1:]...)
			return
		}
	}
}

// Len returns how many observers are registered.
func (p *Publisher) Len() int {
	return len(p.observers)
}

// OnEvent delivers e to every observer in order. When e carries a trace,
// a hop from the publisher to each observer is recorded before that
// observer runs.
func (p *Publisher) OnEvent(ctx context.Context, e Event) {
	var failures []observerFailure
	for i, o := range p.observers {
		if t := e.Trace(); t != nil {
			t.record(p, o)
		}
		if err := p.deliver(ctx, o, e); err != nil {
			failures = append(failures, observerFailure{index: i, err: err})
		}
	}
	for _, f := range failures {
		p.reportFailure(ctx, f)
	}
}

type observerFailure struct {
	index int
	err   error
}

func (p *Publisher) deliver(ctx context.Context, o Observer, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError(r)
		}
	}()
	o.OnEvent(ctx, e)
	return nil
}

// reportFailure publishes a critical event describing a failed delivery
// to every observer except the one that failed. Failures while
// delivering the report itself are discarded.
func (p *Publisher) reportFailure(ctx context.Context, f observerFailure) {
	report := Event{
		KeyTime:      time.Now(),
		KeyLevel:     LevelCritical,
		KeyNamespace: PublisherNamespace,
		KeyFormat:    "observer {observer} failed: {failure}",
		KeyFailure:   f.err,
		"observer":   fmt.Sprintf("%T", p.observers[f.index]),
	}
	for i, o := range p.observers {
		if i == f.index {
			continue
		}
		func() {
			defer func() { _ = recover() }()
			o.OnEvent(ctx, report)
		}()
	}
}

func panicError(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("observer panicked: %w", err)
	}
	return fmt.Errorf("observer panicked: %v", r)
}

// observersEqual compares observers while tolerating non-comparable
// dynamic types such as ObserverFunc, which == would panic on.
func observersEqual(a, b Observer) bool {
	if a == nil || b == nil {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Kind() == reflect.Func {
		return va.Pointer() == vb.Pointer()
	}
	if !va.Type().Comparable() {
		return false
	}
	return a == b
}
