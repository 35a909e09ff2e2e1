package sieve_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tailored-agentic-units/sieve"
)

func TestLogger_Levels(t *testing.T) {
	capture := sieve.NewCaptureObserver()
	log := sieve.NewLogger("api", sieve.WithObserver(capture))

	tests := []struct {
		name string
		emit func(format string, kvs ...any)
		want sieve.Level
	}{
		{name: "debug", emit: log.Debug, want: sieve.LevelDebug},
		{name: "info", emit: log.Info, want: sieve.LevelInfo},
		{name: "warn", emit: log.Warn, want: sieve.LevelWarn},
		{name: "error", emit: log.Error, want: sieve.LevelError},
		{name: "critical", emit: log.Critical, want: sieve.LevelCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capture.Clear()
			tt.emit("ping")

			events := capture.Events()
			if len(events) != 1 {
				t.Fatalf("captured %d events, want 1", len(events))
			}
			e := events[0]
			if lvl, ok := e.Level(); !ok || lvl != tt.want {
				t.Errorf("Level() = %v, %v, want %v, true", lvl, ok, tt.want)
			}
			if ns, _ := e.Namespace(); ns != "api" {
				t.Errorf("Namespace() = %q, want %q", ns, "api")
			}
			if _, ok := e.Timestamp(); !ok {
				t.Error("event has no timestamp")
			}
		})
	}
}

func TestLogger_KeyValuePairs(t *testing.T) {
	capture := sieve.NewCaptureObserver()
	log := sieve.NewLogger("api", sieve.WithObserver(capture))

	log.Info("user {user_id} did {action}", "user_id", 42, "action", "login")

	e := capture.Events()[0]
	if e["user_id"] != 42 {
		t.Errorf(`e["user_id"] = %v, want 42`, e["user_id"])
	}
	if e["action"] != "login" {
		t.Errorf(`e["action"] = %v, want "login"`, e["action"])
	}
	if got := sieve.FormatEvent(e); got != "user 42 did login" {
		t.Errorf("FormatEvent() = %q, want %q", got, "user 42 did login")
	}
}

func TestLogger_ReservedKeysWin(t *testing.T) {
	capture := sieve.NewCaptureObserver()
	log := sieve.NewLogger("api", sieve.WithObserver(capture))

	log.Info("m",
		sieve.KeyLevel, sieve.LevelCritical,
		sieve.KeyNamespace, "forged",
		sieve.KeyFormat, "forged",
		sieve.KeyTime, time.Time{},
	)

	e := capture.Events()[0]
	if lvl, _ := e.Level(); lvl != sieve.LevelInfo {
		t.Errorf("Level() = %v, want %v (pair must not displace it)", lvl, sieve.LevelInfo)
	}
	if ns, _ := e.Namespace(); ns != "api" {
		t.Errorf("Namespace() = %q, want %q", ns, "api")
	}
	if e[sieve.KeyFormat] != "m" {
		t.Errorf("format = %v, want %q", e[sieve.KeyFormat], "m")
	}
	if ts, ok := e.Timestamp(); !ok || ts.IsZero() {
		t.Error("timestamp displaced by a user pair")
	}
}

func TestLogger_OddPairs(t *testing.T) {
	capture := sieve.NewCaptureObserver()
	log := sieve.NewLogger("api", sieve.WithObserver(capture))

	log.Info("m", "dangling")

	e := capture.Events()[0]
	v, ok := e["dangling"]
	if !ok {
		t.Fatal(`e["dangling"] missing, want present with nil value`)
	}
	if v != nil {
		t.Errorf(`e["dangling"] = %v, want nil`, v)
	}
}

func TestLogger_NonStringKeys(t *testing.T) {
	capture := sieve.NewCaptureObserver()
	log := sieve.NewLogger("api", sieve.WithObserver(capture))

	log.Info("m", 42, "answer")

	e := capture.Events()[0]
	if e["42"] != "answer" {
		t.Errorf(`e["42"] = %v, want "answer"`, e["42"])
	}
}

func TestLogger_Failure(t *testing.T) {
	capture := sieve.NewCaptureObserver()
	log := sieve.NewLogger("api", sieve.WithObserver(capture))

	log.Failure("fetching {url}: {failure}", errors.New("timeout"), "url", "/health")

	e := capture.Events()[0]
	if lvl, _ := e.Level(); lvl != sieve.LevelCritical {
		t.Errorf("Level() = %v, want %v", lvl, sieve.LevelCritical)
	}
	err := e.Failure()
	if err == nil || err.Error() != "timeout" {
		t.Errorf("Failure() = %v, want timeout error", err)
	}
	if got := sieve.FormatEvent(e); got != "fetching /health: timeout" {
		t.Errorf("FormatEvent() = %q, want %q", got, "fetching /health: timeout")
	}
}

func TestLogger_Emit(t *testing.T) {
	capture := sieve.NewCaptureObserver()
	log := sieve.NewLogger("api", sieve.WithObserver(capture))

	log.Emit(sieve.LevelWarn, "custom")

	e := capture.Events()[0]
	if lvl, _ := e.Level(); lvl != sieve.LevelWarn {
		t.Errorf("Level() = %v, want %v", lvl, sieve.LevelWarn)
	}
}

func TestLogger_WithSource(t *testing.T) {
	type service struct{ name string }
	svc := &service{name: "billing"}

	capture := sieve.NewCaptureObserver()
	log := sieve.NewLogger("api", sieve.WithObserver(capture), sieve.WithSource(svc))

	log.Info("up")

	e := capture.Events()[0]
	if e[sieve.KeySource] != svc {
		t.Errorf("source = %v, want the configured value", e[sieve.KeySource])
	}
}

func TestLogger_DerivedNamespace(t *testing.T) {
	capture := sieve.NewCaptureObserver()
	log := sieve.NewLogger("", sieve.WithObserver(capture))

	ns := log.Namespace()
	if !strings.HasPrefix(ns, "github.com/tailored-agentic-units/sieve") {
		t.Errorf("Namespace() = %q, want the calling package's import path", ns)
	}

	log.Info("here")
	if got, _ := capture.Events()[0].Namespace(); got != ns {
		t.Errorf("event namespace = %q, want %q", got, ns)
	}
}

func TestLogger_StampsCaller(t *testing.T) {
	capture := sieve.NewCaptureObserver()
	log := sieve.NewLogger("api", sieve.WithObserver(capture))

	log.Info("here")

	pc, ok := capture.Events()[0][sieve.KeyCaller].(uintptr)
	if !ok || pc == 0 {
		t.Fatal("event has no caller program counter")
	}
}

func TestLogger_FollowsGlobalPublisher(t *testing.T) {
	capture := sieve.NewCaptureObserver()
	log := sieve.NewLogger("api") // no observer: follows the global publisher

	sieve.GlobalPublisher().AddObserver(capture)
	defer sieve.GlobalPublisher().RemoveObserver(capture)

	log.Info("broadcast")

	found := false
	for _, e := range capture.Events() {
		if sieve.FormatEvent(e) == "broadcast" {
			found = true
		}
	}
	if !found {
		t.Error("event never reached an observer added to the global publisher after the logger was made")
	}
}
