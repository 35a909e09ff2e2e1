package sieve

import (
	"bytes"
	"io"
	"strings"
	"sync"
)

// LogWriter turns a byte stream into events, one per line. Useful for
// pointing the standard library's log package, or a subprocess's stderr,
// into the pipeline:
//
//	log.SetOutput(sieve.NewLogWriter(logger, sieve.LevelInfo))
//
// Partial lines are buffered until their newline arrives; Close flushes
// whatever remains. Blank lines are dropped, and line text is escaped so
// braces log literally.
type LogWriter struct {
	mu     sync.Mutex
	logger *Logger
	level  Level
	buf    bytes.Buffer
}

// NewLogWriter creates a writer emitting each line as one event at the
// given level through logger. A nil logger gets a logger named for the
// calling package.
func NewLogWriter(logger *Logger, level Level) *LogWriter {
	if logger == nil {
		logger = NewLogger(callerNamespace(2))
	}
	return &LogWriter{logger: logger, level: level}
}

// Write implements io.Writer. It never fails; the returned length is
// always len(p).
func (w *LogWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// incomplete line, keep for the next write
			w.buf.WriteString(line)
			break
		}
		w.emit(line)
	}
	return len(p), nil
}

// Close implements io.Closer, flushing any buffered partial line.
func (w *LogWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
	return nil
}

func (w *LogWriter) emit(line string) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return
	}
	w.logger.Emit(w.level, EscapeFormat(line))
}

var _ io.WriteCloser = (*LogWriter)(nil)
