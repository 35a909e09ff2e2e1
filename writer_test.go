package sieve_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/tailored-agentic-units/sieve"
)

func TestWriterObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := sieve.NewWriterObserver(&buf)

	obs.OnEvent(context.Background(), sieve.Event{
		sieve.KeyTime:      time.Date(2025, time.March, 9, 8, 7, 6, 0, time.UTC),
		sieve.KeyLevel:     sieve.LevelInfo,
		sieve.KeyNamespace: "api.http",
		sieve.KeyFormat:    "listening on {addr}",
		"addr":             ":8080",
	})

	want := "2025-03-09T08:07:06Z [api.http#info] listening on :8080\n"
	if got := buf.String(); got != want {
		t.Errorf("wrote %q, want %q", got, want)
	}
}

func TestWriterObserver_EmptyEvent(t *testing.T) {
	var buf bytes.Buffer
	obs := sieve.NewWriterObserver(&buf)

	obs.OnEvent(context.Background(), sieve.Event{})

	if got := buf.String(); got != "- [-#-] \n" {
		t.Errorf("wrote %q, want %q", got, "- [-#-] \n")
	}
}

func TestWriterObserver_WithTimeLayout(t *testing.T) {
	var buf bytes.Buffer
	obs := sieve.NewWriterObserver(&buf, sieve.WithTimeLayout(time.Kitchen))

	obs.OnEvent(context.Background(), sieve.Event{
		sieve.KeyTime:      time.Date(2025, time.March, 9, 15, 4, 0, 0, time.UTC),
		sieve.KeyLevel:     sieve.LevelWarn,
		sieve.KeyNamespace: "api",
		sieve.KeyFormat:    "slow",
	})

	want := "3:04PM [api#warn] slow\n"
	if got := buf.String(); got != want {
		t.Errorf("wrote %q, want %q", got, want)
	}
}

func TestWriterObserver_OneLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	obs := sieve.NewWriterObserver(&buf)

	for i := 0; i < 3; i++ {
		obs.OnEvent(context.Background(), sieve.Event{
			sieve.KeyLevel:  sieve.LevelInfo,
			sieve.KeyFormat: "ping",
		})
	}

	if got := bytes.Count(buf.Bytes(), []byte("\n")); got != 3 {
		t.Errorf("wrote %d newlines, want 3", got)
	}
}
