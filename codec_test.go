package sieve_test

import (
	"testing"
	"time"

	"github.com/tailored-agentic-units/sieve"
)

func TestEventToStruct_RoundTrip(t *testing.T) {
	ts := time.Date(2025, time.March, 9, 8, 7, 6, 0, time.UTC)
	original := sieve.Event{
		sieve.KeyTime:      ts,
		sieve.KeyLevel:     sieve.LevelWarn,
		sieve.KeyNamespace: "api",
		sieve.KeyFormat:    "retry {n}",
		"n":                2,
	}

	s, err := sieve.EventToStruct(original)
	if err != nil {
		t.Fatalf("EventToStruct() error = %v", err)
	}
	revived, err := sieve.EventFromStruct(s)
	if err != nil {
		t.Fatalf("EventFromStruct() error = %v", err)
	}

	if lvl, ok := revived.Level(); !ok || lvl != sieve.LevelWarn {
		t.Errorf("Level() = %v, %v, want %v, true", lvl, ok, sieve.LevelWarn)
	}
	got, ok := revived.Timestamp()
	if !ok || !got.Equal(ts) {
		t.Errorf("Timestamp() = %v, %v, want %v, true", got, ok, ts)
	}
	if msg := sieve.FormatEvent(revived); msg != "retry 2" {
		t.Errorf("FormatEvent() = %q, want %q", msg, "retry 2")
	}
}

func TestEventToStruct_DropsTrace(t *testing.T) {
	e := sieve.Event{sieve.KeyFormat: "x"}
	sieve.AttachTrace(e)

	s, err := sieve.EventToStruct(e)
	if err != nil {
		t.Fatalf("EventToStruct() error = %v", err)
	}
	if _, ok := s.GetFields()[sieve.KeyTrace]; ok {
		t.Error("trace survived conversion, want it dropped")
	}
}

func TestEventFromStruct_Nil(t *testing.T) {
	if _, err := sieve.EventFromStruct(nil); err == nil {
		t.Error("EventFromStruct(nil) error = nil, want failure")
	}
}
