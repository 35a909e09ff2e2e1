package sieve

import "strings"

// DefaultThreshold is the severity gate a new LevelFilterPredicate
// applies where nothing more specific is configured. Construction takes
// a snapshot; changing this afterwards does not affect existing
// predicates.
var DefaultThreshold = LevelInfo

// LevelFilterPredicate drops events whose severity falls below the
// threshold configured for their namespace.
//
// Thresholds attach to dot-separated namespaces and cover the namespace
// and everything beneath it. Resolution picks the most specific
// configured ancestor, whole segments only: a threshold for "api.http"
// covers "api.http.router" but says nothing about "api.httpd". Events
// missing a severity or namespace are dropped as malformed.
//
// The predicate never answers ResultYes, so later predicates in a chain
// keep their say over events it lets through.
//
// Configure before use; mutation is not synchronized with Evaluate.
type LevelFilterPredicate struct {
	defaultThreshold Level
	root             Level
	rootSet          bool
	thresholds       map[string]Level
}

// LevelFilterOption configures a LevelFilterPredicate.
type LevelFilterOption func(*LevelFilterPredicate)

// WithDefaultThreshold sets the gate used where no namespace or root
// threshold applies.
func WithDefaultThreshold(level Level) LevelFilterOption {
	return func(p *LevelFilterPredicate) {
		p.defaultThreshold = level
	}
}

// NewLevelFilterPredicate creates a predicate with no namespace
// thresholds; every namespace starts gated at DefaultThreshold.
func NewLevelFilterPredicate(opts ...LevelFilterOption) *LevelFilterPredicate {
	p := &LevelFilterPredicate{
		defaultThreshold: DefaultThreshold,
		thresholds:       make(map[string]Level),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetThreshold sets the severity gate for namespace and its descendants.
// Only valid levels are accepted; anything else leaves the configuration
// unchanged and returns *InvalidLevelError.
func (p *LevelFilterPredicate) SetThreshold(namespace string, level Level) error {
	if !level.Valid() {
		return &InvalidLevelError{Level: level}
	}
	p.thresholds[namespace] = level
	return nil
}

// SetRootThreshold sets the gate backstopping namespaces with no
// configured ancestor, overriding the default threshold.
func (p *LevelFilterPredicate) SetRootThreshold(level Level) error {
	if !level.Valid() {
		return &InvalidLevelError{Level: level}
	}
	p.root = level
	p.rootSet = true
	return nil
}

// RootThreshold returns the root gate: the value set by
// SetRootThreshold, or the default threshold when none was set.
func (p *LevelFilterPredicate) RootThreshold() Level {
	if p.rootSet {
		return p.root
	}
	return p.defaultThreshold
}

// ThresholdFor resolves the severity gate for a namespace: the threshold
// of its most specific configured ancestor, itself included, else the
// root gate.
func (p *LevelFilterPredicate) ThresholdFor(namespace string) Level {
	ns := namespace
	for {
		if lvl, ok := p.thresholds[ns]; ok {
			return lvl
		}
		i := strings.LastIndexByte(ns, '.')
		if i < 0 {
			return p.RootThreshold()
		}
		ns = ns[:i]
	}
}

// ClearThresholds removes all namespace and root thresholds, restoring
// the state of a newly constructed predicate with the same default.
func (p *LevelFilterPredicate) ClearThresholds() {
	clear(p.thresholds)
	p.root = 0
	p.rootSet = false
}

// Evaluate drops events below their namespace's gate, and events missing
// a severity or namespace. It never returns ResultYes.
func (p *LevelFilterPredicate) Evaluate(e Event) PredicateResult {
	ns, ok := e.Namespace()
	if !ok {
		return ResultNo
	}
	lvl, ok := e.Level()
	if !ok {
		return ResultNo
	}
	if lvl < p.ThresholdFor(ns) {
		return ResultNo
	}
	return ResultMaybe
}

var _ Predicate = (*LevelFilterPredicate)(nil)
