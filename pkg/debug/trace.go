package debug

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// TraceLogger writes one line per parser step.
type TraceLogger struct {
	mu      sync.Mutex
	writer  io.Writer
	enabled bool
}

// NewTraceLogger creates a trace logger writing to w, or stderr when w is nil.
func NewTraceLogger(w io.Writer) *TraceLogger {
	if w == nil {
		w = defaultTraceWriter()
	}
	return &TraceLogger{
		writer:  w,
		enabled: true,
	}
}

// SetEnabled toggles trace output.
func (t *TraceLogger) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
}

// Log records a trace entry for a component step.
func (t *TraceLogger) Log(component, step, detail string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled {
		return
	}
	fmt.Fprintf(t.writer, "[TRACE %s] %s: %s - %s\n",
		time.Now().Format("15:04:05.000"), component, step, detail)
}

func defaultTraceWriter() io.Writer {
	return os.Stderr
}
