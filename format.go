package sieve

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// FormatEvent renders an event's human-readable message from its format
// template. Returns "" when the event carries no template. A template
// that cannot be rendered (non-string template, reference to a missing
// field, unbalanced braces) yields a description of the problem instead
// of a partial message.
//
// Templates reference event fields as {key}; literal braces are written
// {{ and }}. A {key()} reference calls the field's value, which must be
// a func() string or func() any, so expensive values can stay unrendered
// until an event actually reaches a sink.
func FormatEvent(e Event) string {
	raw, ok := e[KeyFormat]
	if !ok || raw == nil {
		return ""
	}
	format, ok := raw.(string)
	if !ok {
		return unformattableEvent(e, fmt.Sprintf("format template is %T, not string", raw))
	}
	msg, err := interpolate(format, e)
	if err != nil {
		return unformattableEvent(e, err.Error())
	}
	return msg
}

func interpolate(format string, e Event) (string, error) {
	var b strings.Builder
	b.Grow(len(format))
	for len(format) > 0 {
		i := strings.IndexAny(format, "{}")
		if i < 0 {
			b.WriteString(format)
			break
		}
		b.WriteString(format[:i])
		rest := format[i:]
		switch {
		case strings.HasPrefix(rest, "{{"):
			b.WriteByte('{')
			format = rest[2:]
		case strings.HasPrefix(rest, "}}"):
			b.WriteByte('}')
			format = rest[2:]
		case rest[0] == '}':
			return "", errors.New("single '}' in format template")
		default:
			end := strings.IndexByte(rest, '}')
			if end < 0 {
				return "", errors.New("unterminated '{' in format template")
			}
			value, err := fieldValue(e, rest[1:end])
			if err != nil {
				return "", err
			}
			b.WriteString(fmt.Sprint(value))
			format = rest[end+1:]
		}
	}
	return b.String(), nil
}

func fieldValue(e Event, key string) (any, error) {
	name, call := strings.CutSuffix(key, "()")
	v, ok := e[name]
	if !ok {
		return nil, fmt.Errorf("no such field %q", name)
	}
	if !call {
		return v, nil
	}
	switch fn := v.(type) {
	case func() string:
		return fn(), nil
	case func() any:
		return fn(), nil
	}
	return nil, fmt.Errorf("field %q is not callable", name)
}

// unformattableEvent names the problem alongside the raw event so a
// broken template still says which event it came from.
func unformattableEvent(e Event, problem string) string {
	return fmt.Sprintf("unable to format event %v: %s", map[string]any(e), problem)
}

// EscapeFormat quotes braces in s so FormatEvent renders it verbatim.
func EscapeFormat(s string) string {
	if !strings.ContainsAny(s, "{}") {
		return s
	}
	return formatEscaper.Replace(s)
}

var formatEscaper = strings.NewReplacer("{", "{{", "}", "}}")

// FormatTime renders t for classic log text. The zero time renders as
// "-".
func FormatTime(t time.Time) string {
	return formatTimeLayout(t, time.RFC3339)
}

func formatTimeLayout(t time.Time, layout string) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(layout)
}

// ClassicLogText renders e as a single classic log line: timestamp,
// [namespace#level], message, trailing newline. Missing parts render as
// "-". A failure event appends the error text to the message.
func ClassicLogText(e Event) string {
	return classicLogText(e, time.RFC3339)
}

func classicLogText(e Event, layout string) string {
	ts, _ := e.Timestamp()
	msg := FormatEvent(e)
	if err := e.Failure(); err != nil {
		if msg != "" {
			msg += ": "
		}
		msg += err.Error()
	}
	return formatTimeLayout(ts, layout) + " [" + eventSystem(e) + "] " + msg + "\n"
}

func eventSystem(e Event) string {
	ns, ok := e.Namespace()
	if !ok || ns == "" {
		ns = "-"
	}
	name := "-"
	if lvl, lok := e.Level(); lok {
		name = lvl.String()
	}
	return ns + "#" + name
}

// EventString defers rendering an event's message until something needs
// the string, then caches the result. Hand it to sinks that accept
// fmt.Stringer so filtered-out events are never formatted.
type EventString struct {
	event Event
	once  sync.Once
	text  string
}

// NewEventString returns a lazy Stringer over e.
func NewEventString(e Event) *EventString {
	return &EventString{event: e}
}

// String renders the event's message. The first call formats; later
// calls return the cached text even if the event changed in between.
func (s *EventString) String() string {
	s.once.Do(func() {
		s.text = FormatEvent(s.event)
	})
	return s.text
}

var _ fmt.Stringer = (*EventString)(nil)
