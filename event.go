package sieve

import "time"

// Reserved event keys. Emitters own these: Logger and the slog Handler
// write them after user-supplied fields, so a user field never displaces
// them.
const (
	// KeyLevel holds the event's severity as a Level.
	KeyLevel = "level"
	// KeyNamespace holds the event's dot-separated origin.
	KeyNamespace = "namespace"
	// KeyTrace holds a *Trace recording the event's delivery path.
	KeyTrace = "trace"
	// KeyFormat holds the message template rendered by FormatEvent.
	KeyFormat = "format"
	// KeyTime holds the emission time as a time.Time.
	KeyTime = "time"
	// KeySource holds the value on whose behalf the event was emitted.
	KeySource = "source"
	// KeyFailure holds the error being reported, as an error.
	KeyFailure = "failure"
	// KeyCaller holds the emitting call site's program counter as a uintptr.
	KeyCaller = "caller"
)

// Event is one structured log event. Keys without a Key* constant are
// free-form user fields. The pipeline shares events between observers
// without copying; only the trace is appended to in flight.
type Event map[string]any

// Level returns the event's severity. ok is false when the key is absent
// or holds anything but a valid Level.
func (e Event) Level() (Level, bool) {
	lvl, ok := e[KeyLevel].(Level)
	if !ok || !lvl.Valid() {
		return 0, false
	}
	return lvl, true
}

// Namespace returns the event's origin namespace. ok is false when the
// key is absent or holds a non-string.
func (e Event) Namespace() (string, bool) {
	ns, ok := e[KeyNamespace].(string)
	return ns, ok
}

// Timestamp returns the event's emission time. ok is false when the key
// is absent or holds a non-time value.
func (e Event) Timestamp() (time.Time, bool) {
	ts, ok := e[KeyTime].(time.Time)
	return ts, ok
}

// Failure returns the error carried by the event, or nil.
func (e Event) Failure() error {
	err, _ := e[KeyFailure].(error)
	return err
}

// Trace returns the event's delivery trace, or nil when the event is not
// being traced.
func (e Event) Trace() *Trace {
	t, _ := e[KeyTrace].(*Trace)
	return t
}

// Hop is one edge in a delivery trace: From handed the event to To.
type Hop struct {
	From Observer
	To   Observer
}

// Trace records the observers an event passed through, in delivery
// order. Publisher and FilteringObserver append to it when present.
type Trace []Hop

// AttachTrace enables delivery tracing for e and returns the trace. If e
// already carries a trace, that trace is returned unchanged.
func AttachTrace(e Event) *Trace {
	if t := e.Trace(); t != nil {
		return t
	}
	t := &Trace{}
	e[KeyTrace] = t
	return t
}

// Hops returns a copy of the recorded hops.
func (t *Trace) Hops() []Hop {
	if t == nil {
		return nil
	}
	return append([]Hop(nil), *t...)
}

func (t *Trace) record(from, to Observer) {
	*t = append(*t, Hop{From: from, To: to})
}
