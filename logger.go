package sieve

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"
)

// Logger emits events into the pipeline on behalf of one namespace.
//
// Emitting methods take a format template and alternating key/value
// pairs. User pairs are written first, then the reserved keys, so a pair
// can never displace the level, namespace, timestamp, or template. Each
// event is stamped with the call site's program counter for caller
// attribution downstream.
type Logger struct {
	namespace string
	observer  Observer
	source    any
}

// LoggerOption configures a Logger.
type LoggerOption func(*Logger)

// WithObserver directs the logger's events at o instead of the global
// publisher.
func WithObserver(o Observer) LoggerOption {
	return func(l *Logger) {
		l.observer = o
	}
}

// WithSource marks every event with the value the logger speaks for.
func WithSource(source any) LoggerOption {
	return func(l *Logger) {
		l.source = source
	}
}

// NewLogger creates a logger for namespace. An empty namespace is
// replaced by the calling package's import path. Without WithObserver
// the logger follows the global publisher, picking up observers
// installed after the logger was made.
func NewLogger(namespace string, opts ...LoggerOption) *Logger {
	l := &Logger{namespace: namespace}
	for _, opt := range opts {
		opt(l)
	}
	if l.namespace == "" {
		l.namespace = callerNamespace(2)
	}
	return l
}

// Namespace returns the namespace stamped on the logger's events.
func (l *Logger) Namespace() string {
	return l.namespace
}

// Debug emits a debug event.
func (l *Logger) Debug(format string, kvs ...any) {
	l.emit(LevelDebug, format, nil, kvs)
}

// Info emits an info event.
func (l *Logger) Info(format string, kvs ...any) {
	l.emit(LevelInfo, format, nil, kvs)
}

// Warn emits a warning event.
func (l *Logger) Warn(format string, kvs ...any) {
	l.emit(LevelWarn, format, nil, kvs)
}

// Error emits an error event.
func (l *Logger) Error(format string, kvs ...any) {
	l.emit(LevelError, format, nil, kvs)
}

// Critical emits a critical event.
func (l *Logger) Critical(format string, kvs ...any) {
	l.emit(LevelCritical, format, nil, kvs)
}

// Emit emits an event at the given severity. Severities outside the
// named set travel as-is and read as unleveled downstream.
func (l *Logger) Emit(level Level, format string, kvs ...any) {
	l.emit(level, format, nil, kvs)
}

// Failure emits a critical event carrying err. The template may
// reference the error as {failure}.
func (l *Logger) Failure(format string, err error, kvs ...any) {
	l.emit(LevelCritical, format, err, kvs)
}

// emit assumes it is called through exactly one exported wrapper; the
// stamped program counter is the wrapper's caller.
func (l *Logger) emit(level Level, format string, failure error, kvs []any) {
	e := make(Event, len(kvs)/2+7)
	for i := 0; i < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			key = fmt.Sprint(kvs[i])
		}
		if i+1 < len(kvs) {
			e[key] = kvs[i+1]
		} else {
			e[key] = nil
		}
	}
	e[KeyTime] = time.Now()
	e[KeyLevel] = level
	e[KeyNamespace] = l.namespace
	e[KeyFormat] = format
	if l.source != nil {
		e[KeySource] = l.source
	}
	if failure != nil {
		e[KeyFailure] = failure
	}
	var pcs [1]uintptr
	if runtime.Callers(3, pcs[:]) > 0 {
		e[KeyCaller] = pcs[0]
	}
	l.target().OnEvent(context.Background(), e)
}

func (l *Logger) target() Observer {
	if l.observer != nil {
		return l.observer
	}
	return GlobalPublisher()
}

// callerNamespace derives a namespace from the package path of the
// function skip frames up the stack.
func callerNamespace(skip int) string {
	var pcs [1]uintptr
	if runtime.Callers(skip+1, pcs[:]) == 0 {
		return "unknown"
	}
	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	return packageOf(frame.Function)
}

// packageOf trims a qualified function name down to its package path:
// "example.com/pkg.(*T).Method" becomes "example.com/pkg".
func packageOf(function string) string {
	if function == "" {
		return "unknown"
	}
	slash := strings.LastIndexByte(function, '/')
	dot := strings.IndexByte(function[slash+1:], '.')
	if dot < 0 {
		return function
	}
	return function[:slash+1+dot]
}
