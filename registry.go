package sieve

import (
	"fmt"
	"os"
	"sync"
)

var (
	registered = map[string]Observer{
		"noop":   NoOpObserver{},
		"slog":   NewSlogObserver(nil),
		"stderr": NewWriterObserver(os.Stderr),
	}
	registryMu sync.RWMutex
)

// GetObserver returns a registered observer by name. Pre-registered
// observers: "noop" (discard), "slog" (the default slog logger), and
// "stderr" (classic log text on standard error).
func GetObserver(name string) (Observer, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	o, exists := registered[name]
	if !exists {
		return nil, fmt.Errorf("unknown observer: %s", name)
	}
	return o, nil
}

// RegisterObserver adds or replaces a named observer in the global
// registry.
func RegisterObserver(name string, observer Observer) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registered[name] = observer
}
