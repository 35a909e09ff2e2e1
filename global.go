package sieve

import (
	"context"
	"io"
	"os"
	"sync"
	"time"
)

// BeginnerNamespace is the namespace on events a Beginner emits about
// its own operation.
const BeginnerNamespace = "sieve.beginner"

// Beginner owns the transition from pre-start buffering to real logging.
//
// Until BeginLoggingTo is called, its publisher feeds two temporary
// observers: a ring buffer retaining recent history, and a critical-only
// writer so severe trouble is visible on errOut before logging starts.
// BeginLoggingTo removes both, installs the real observers, and replays
// the buffered history to each of them once.
type Beginner struct {
	mu        sync.Mutex
	publisher *Publisher
	buffer    *RingBufferObserver
	temporary []Observer
	installed []Observer
	begun     bool
}

// NewBeginner wraps publisher with pre-start buffering. Critical events
// arriving before BeginLoggingTo are rendered to errOut.
func NewBeginner(publisher *Publisher, errOut io.Writer) *Beginner {
	b := &Beginner{
		publisher: publisher,
		buffer:    NewRingBufferObserver(DefaultRingSize),
	}
	critical := NewLevelFilterPredicate(WithDefaultThreshold(LevelCritical))
	emergency := NewFilteringObserver(NewWriterObserver(errOut), critical)
	b.temporary = []Observer{b.buffer, emergency}
	for _, o := range b.temporary {
		publisher.AddObserver(o)
	}
	return b
}

// BeginLoggingTo ends buffering and delivers events to observers from
// now on. Buffered history is replayed to each new observer first. The
// first call removes the temporary observers; calling again emits a
// warning and replaces the previously installed observers.
func (b *Beginner) BeginLoggingTo(ctx context.Context, observers ...Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()

	history := b.buffer.Events()
	if !b.begun {
		for _, o := range b.temporary {
			b.publisher.RemoveObserver(o)
		}
		b.buffer.Clear()
		b.begun = true
	} else {
		b.publisher.OnEvent(ctx, Event{
			KeyTime:      time.Now(),
			KeyLevel:     LevelWarn,
			KeyNamespace: BeginnerNamespace,
			KeyFormat:    "logging already begun; replacing observers",
		})
		for _, o := range b.installed {
			b.publisher.RemoveObserver(o)
		}
	}

	kept := make([]Observer, 0, len(observers))
	for _, o := range observers {
		if o == nil {
			continue
		}
		for _, e := range history {
			o.OnEvent(ctx, e)
		}
		b.publisher.AddObserver(o)
		kept = append(kept, o)
	}
	b.installed = kept
}

var (
	globalPublisher = NewPublisher()
	globalBeginner  = NewBeginner(globalPublisher, os.Stderr)
)

// GlobalPublisher returns the process-wide publisher loggers use by
// default.
func GlobalPublisher() *Publisher {
	return globalPublisher
}

// BeginLoggingTo starts process-wide logging: pre-start history is
// replayed to the given observers and future events flow to them. See
// Beginner.BeginLoggingTo.
func BeginLoggingTo(ctx context.Context, observers ...Observer) {
	globalBeginner.BeginLoggingTo(ctx, observers...)
}
