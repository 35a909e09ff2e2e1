package sieve

import "fmt"

// InvalidLevelError reports a severity outside the named level set,
// rejected either as a value or by name.
type InvalidLevelError struct {
	// Level is the rejected value when the severity was given as a Level.
	Level Level
	// Name is the rejected spelling when the severity was given as a string.
	Name string
}

func (e *InvalidLevelError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("invalid log level %q", e.Name)
	}
	return fmt.Sprintf("invalid log level %d", int(e.Level))
}

// InvalidResultError reports a predicate decision outside the
// PredicateResult set. FilteringObserver panics with it.
type InvalidResultError struct {
	Result PredicateResult
}

func (e *InvalidResultError) Error() string {
	return fmt.Sprintf("invalid predicate result %d", int(e.Result))
}
