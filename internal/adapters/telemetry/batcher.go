package telemetry

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

const (
	// defaultBatchBytes is the flush threshold for buffered span output.
	defaultBatchBytes = 4096
	// defaultBatchInterval caps how long a partial batch may sit unflushed.
	defaultBatchInterval = 50 * time.Millisecond
)

// ErrBatcherClosed is returned by Write after Close.
var ErrBatcherClosed = errors.New("log batcher is closed")

// LogBatcher coalesces the per-file progress lines a span produces into
// larger chunks before they are handed to the sink. Without it every
// "copied ..." line would cross the renderer channel as its own message.
// Safe for concurrent use.
type LogBatcher struct {
	limit    int
	interval time.Duration
	sink     func([]byte)

	mu     sync.Mutex
	buf    bytes.Buffer
	ticker *time.Ticker
	done   chan struct{}
	closed bool
}

// NewLogBatcher starts a batcher flushing to sink whenever limit bytes
// accumulate or interval elapses. Zero values select the defaults. Close
// stops the background flusher.
func NewLogBatcher(limit int, interval time.Duration, sink func([]byte)) *LogBatcher {
	if limit <= 0 {
		limit = defaultBatchBytes
	}
	if interval <= 0 {
		interval = defaultBatchInterval
	}

	b := &LogBatcher{
		limit:    limit,
		interval: interval,
		sink:     sink,
		done:     make(chan struct{}),
	}

	b.ticker = time.NewTicker(interval)
	go b.loop()

	return b
}

// Write buffers p, flushing once the size threshold is crossed.
func (b *LogBatcher) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, ErrBatcherClosed
	}

	n, err := b.buf.Write(p)
	if err != nil {
		return n, err
	}

	if b.buf.Len() >= b.limit {
		b.flushLocked()
		// A size-triggered flush restarts the interval, otherwise the
		// ticker could fire right behind it on an empty buffer.
		b.ticker.Reset(b.interval)
	}

	return n, nil
}

// Flush hands any buffered data to the sink immediately.
func (b *LogBatcher) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.flushLocked()
}

// Close performs a final flush and stops the background ticker.
// Subsequent writes fail with ErrBatcherClosed. Idempotent.
func (b *LogBatcher) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	b.closed = true
	close(b.done)
	b.flushLocked()
	return nil
}

func (b *LogBatcher) loop() {
	for {
		select {
		case <-b.ticker.C:
			b.Flush()
		case <-b.done:
			b.ticker.Stop()
			return
		}
	}
}

// flushLocked requires b.mu to be held. The sink runs under the lock so
// flushes stay ordered; it must not block (ours drops into a channel).
func (b *LogBatcher) flushLocked() {
	if b.buf.Len() == 0 {
		return
	}

	data := make([]byte, b.buf.Len())
	copy(data, b.buf.Bytes())
	b.buf.Reset()

	if b.sink != nil {
		b.sink(data)
	}
}
