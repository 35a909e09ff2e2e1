package sieve

import "context"

// FilteringObserver forwards events to a wrapped observer only when its
// predicates allow them.
//
// Predicates run in order: the first ResultNo drops the event, the first
// ResultYes forwards it, and ResultMaybe moves on to the next predicate.
// An event every predicate shrugs at is forwarded. A predicate returning
// anything outside the PredicateResult set causes a panic with
// *InvalidResultError.
type FilteringObserver struct {
	target     Observer
	predicates []Predicate
}

// NewFilteringObserver wraps target behind the given predicates, applied
// in the order given. A nil target discards forwarded events; nil
// predicates are dropped.
func NewFilteringObserver(target Observer, predicates ...Predicate) *FilteringObserver {
	if target == nil {
		target = NoOpObserver{}
	}
	f := &FilteringObserver{target: target}
	for _, p := range predicates {
		if p != nil {
			f.predicates = append(f.predicates, p)
		}
	}
	return f
}

// OnEvent applies the predicates to e and forwards it to the wrapped
// observer when allowed. When e carries a trace, the forwarding hop is
// recorded; dropped events record nothing.
func (f *FilteringObserver) OnEvent(ctx context.Context, e Event) {
	if !f.allows(e) {
		return
	}
	if t := e.Trace(); t != nil {
		t.record(f, f.target)
	}
	f.target.OnEvent(ctx, e)
}

func (f *FilteringObserver) allows(e Event) bool {
	for _, p := range f.predicates {
		switch r := p.Evaluate(e); r {
		case ResultYes:
			return true
		case ResultNo:
			return false
		case ResultMaybe:
		default:
			panic(&InvalidResultError{Result: r})
		}
	}
	return true
}

var _ Observer = (*FilteringObserver)(nil)
