package sieve

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

const maxJSONLine = 1 << 20

// EventToJSON renders e as a single JSON object.
//
// The severity and timestamp become their string forms so the output is
// portable; the trace and caller are dropped, being process-local.
// Values JSON cannot represent are replaced by their fmt rendering.
func EventToJSON(e Event) ([]byte, error) {
	m := make(map[string]any, len(e))
	for k, v := range e {
		switch k {
		case KeyTrace, KeyCaller:
			continue
		case KeyLevel:
			if lvl, ok := e.Level(); ok {
				m[k] = lvl.String()
				continue
			}
		case KeyTime:
			if ts, ok := e.Timestamp(); ok {
				m[k] = ts.Format(time.RFC3339Nano)
				continue
			}
		case KeyFailure:
			if err := e.Failure(); err != nil {
				m[k] = err.Error()
				continue
			}
		}
		m[k] = jsonValue(v)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event: %w", err)
	}
	return data, nil
}

// jsonValue passes v through when JSON can represent it and falls back
// to the fmt rendering otherwise.
func jsonValue(v any) any {
	if _, err := json.Marshal(v); err != nil {
		return fmt.Sprint(v)
	}
	return v
}

// EventFromJSON parses one JSON object produced by EventToJSON back into
// an event. String severities and timestamps are revived to their typed
// forms; unrecognized spellings stay as strings.
func EventFromJSON(data []byte) (Event, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	return reviveEvent(m), nil
}

// reviveEvent re-types the level and time keys of a decoded map.
func reviveEvent(m map[string]any) Event {
	e := Event(m)
	if s, ok := m[KeyLevel].(string); ok {
		if lvl, err := ParseLevel(s); err == nil {
			e[KeyLevel] = lvl
		}
	}
	if s, ok := m[KeyTime].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			e[KeyTime] = ts
		}
	}
	return e
}

// JSONObserver writes events as JSON Lines.
type JSONObserver struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJSONObserver creates an observer writing one JSON object per event
// to w.
func NewJSONObserver(w io.Writer) *JSONObserver {
	return &JSONObserver{w: w}
}

// OnEvent writes e as one JSON line. Events that cannot be encoded are
// dropped.
func (o *JSONObserver) OnEvent(_ context.Context, e Event) {
	data, err := EventToJSON(e)
	if err != nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = o.w.Write(append(data, '\n'))
}

// ReadJSONLog reads a JSON Lines stream of events, skipping blank and
// malformed lines.
func ReadJSONLog(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLine)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		e, err := EventFromJSON(line)
		if err != nil {
			continue // skip malformed lines
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}
	return events, nil
}

var _ Observer = (*JSONObserver)(nil)
