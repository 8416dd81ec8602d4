// Package linear provides a synchronous, line-buffered renderer for CI
// environments and plain terminals.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	uioutput "go.trai.ch/relo/internal/ui/output"
)

// Renderer implements ports.Renderer. It outputs linear, chronological
// logs with a per-binary prefix.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	spans   map[string]*spanState // spanID -> span state
	buffers map[string]*bytes.Buffer
}

type spanState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a new Renderer. Nil writers default to the
// process's stdout and stderr.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	output := termenv.NewOutput(stderr, termenv.WithProfile(uioutput.ColorProfileANSI()))

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output,
		spans:   make(map[string]*spanState),
		buffers: make(map[string]*bytes.Buffer),
	}
}

// Start is a no-op for the linear renderer (synchronous).
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes all remaining buffers.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for spanID := range r.buffers {
		r.flushBufferLocked(spanID)
	}

	return nil
}

// Wait is a no-op for the linear renderer (synchronous).
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the executables about to be bundled.
func (r *Renderer) OnPlanEmit(roots []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Bundling %d executable(s): %v\n", len(roots), roots)
}

// OnSpanStart prints a start message for a bundling stage.
func (r *Renderer) OnSpanStart(spanID, _ /* parentID */, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.spans[spanID] = &spanState{
		name:      name,
		startTime: startTime,
	}
	r.buffers[spanID] = new(bytes.Buffer)

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
}

// OnSpanLog buffers log data and prints complete lines with the span prefix.
func (r *Renderer) OnSpanLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	span, ok := r.spans[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	buf.Write(data)

	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			// Incomplete line, put it back
			if len(line) > 0 {
				newBuf := new(bytes.Buffer)
				newBuf.Write(line)
				r.buffers[spanID] = newBuf
			}
			break
		}

		r.printLineLocked(span.name, line)
	}
}

// OnSpanEnd flushes the remaining buffer and prints the completion status.
func (r *Renderer) OnSpanEnd(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	span, ok := r.spans[spanID]
	if !ok {
		return
	}

	r.flushBufferLocked(spanID)

	duration := endTime.Sub(span.startTime)
	prefix := fmt.Sprintf("[%s]", span.name)

	if err != nil {
		symbol := r.output.String("✗").Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n",
			prefix, symbol, duration, err)
	} else {
		symbol := r.output.String("✓").Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n",
			prefix, symbol, duration)
	}

	delete(r.spans, spanID)
	delete(r.buffers, spanID)
}

// flushBufferLocked flushes any remaining data in the buffer for a span.
// Must be called with r.mu held.
func (r *Renderer) flushBufferLocked(spanID string) {
	span, ok := r.spans[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	if buf.Len() > 0 {
		r.printLineLocked(span.name, buf.Bytes())
		buf.Reset()
	}
}

// printLineLocked prints a line with the span name prefix.
// Must be called with r.mu held.
func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))

	if len(line) == 0 {
		return
	}

	prefix := fmt.Sprintf("[%s]", name)
	_, _ = fmt.Fprintf(r.stdout, "%s %s\n", prefix, string(line))
}
