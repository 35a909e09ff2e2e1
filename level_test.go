package sieve_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/tailored-agentic-units/sieve"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		name  string
		level sieve.Level
		want  string
	}{
		{name: "debug", level: sieve.LevelDebug, want: "debug"},
		{name: "info", level: sieve.LevelInfo, want: "info"},
		{name: "warn", level: sieve.LevelWarn, want: "warn"},
		{name: "error", level: sieve.LevelError, want: "error"},
		{name: "critical", level: sieve.LevelCritical, want: "critical"},
		{name: "unnamed value", level: 7, want: "Level(7)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level sieve.Level
		want  slog.Level
	}{
		{name: "debug maps to Debug", level: sieve.LevelDebug, want: slog.LevelDebug},
		{name: "info maps to Info", level: sieve.LevelInfo, want: slog.LevelInfo},
		{name: "warn maps to Warn", level: sieve.LevelWarn, want: slog.LevelWarn},
		{name: "error maps to Error", level: sieve.LevelError, want: slog.LevelError},
		{name: "critical maps above Error", level: sieve.LevelCritical, want: slog.LevelError + 4},
		{name: "unnamed maps to Info", level: 3, want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.SlogLevel(); got != tt.want {
				t.Errorf("Level(%d).SlogLevel() = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevel_OTelAlignment(t *testing.T) {
	if sieve.LevelDebug != 5 {
		t.Errorf("LevelDebug = %d, want 5 (OTel DEBUG range)", sieve.LevelDebug)
	}
	if sieve.LevelInfo != 9 {
		t.Errorf("LevelInfo = %d, want 9 (OTel INFO range)", sieve.LevelInfo)
	}
	if sieve.LevelWarn != 13 {
		t.Errorf("LevelWarn = %d, want 13 (OTel WARN range)", sieve.LevelWarn)
	}
	if sieve.LevelError != 17 {
		t.Errorf("LevelError = %d, want 17 (OTel ERROR range)", sieve.LevelError)
	}
	if sieve.LevelCritical != 21 {
		t.Errorf("LevelCritical = %d, want 21 (OTel FATAL range)", sieve.LevelCritical)
	}
}

func TestLevel_Valid(t *testing.T) {
	for _, lvl := range sieve.Levels() {
		if !lvl.Valid() {
			t.Errorf("Level(%d).Valid() = false, want true", lvl)
		}
	}
	for _, lvl := range []sieve.Level{0, 1, 3, 7, 8, 12, 25, -1} {
		if lvl.Valid() {
			t.Errorf("Level(%d).Valid() = true, want false", lvl)
		}
	}
}

func TestLevels_Ascending(t *testing.T) {
	levels := sieve.Levels()
	if len(levels) != 5 {
		t.Fatalf("Levels() returned %d levels, want 5", len(levels))
	}
	for i := 1; i < len(levels); i++ {
		if levels[i] <= levels[i-1] {
			t.Errorf("Levels()[%d] = %d, not above Levels()[%d] = %d", i, levels[i], i-1, levels[i-1])
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    sieve.Level
		wantErr bool
	}{
		{name: "debug", input: "debug", want: sieve.LevelDebug},
		{name: "uppercase", input: "INFO", want: sieve.LevelInfo},
		{name: "warn", input: "warn", want: sieve.LevelWarn},
		{name: "warning alias", input: "warning", want: sieve.LevelWarn},
		{name: "padded", input: "  error ", want: sieve.LevelError},
		{name: "critical", input: "critical", want: sieve.LevelCritical},
		{name: "unknown name", input: "verbose", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sieve.ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				var invalid *sieve.InvalidLevelError
				if !errors.As(err, &invalid) {
					t.Fatalf("ParseLevel(%q) error = %T, want *InvalidLevelError", tt.input, err)
				}
				if invalid.Name != tt.input {
					t.Errorf("InvalidLevelError.Name = %q, want %q", invalid.Name, tt.input)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPredicateResult_String(t *testing.T) {
	tests := []struct {
		name   string
		result sieve.PredicateResult
		want   string
	}{
		{name: "yes", result: sieve.ResultYes, want: "yes"},
		{name: "no", result: sieve.ResultNo, want: "no"},
		{name: "maybe", result: sieve.ResultMaybe, want: "maybe"},
		{name: "zero value", result: 0, want: "PredicateResult(0)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.String(); got != tt.want {
				t.Errorf("PredicateResult.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
