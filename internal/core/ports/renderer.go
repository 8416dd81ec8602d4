package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for progress output. It decouples span
// collection from presentation, so the same event stream can drive a
// terminal renderer or plain CI logs.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to flush buffered output and shut down.
	Stop() error

	// Wait blocks until the renderer has fully terminated. Synchronous
	// renderers may return immediately.
	Wait() error

	// OnPlanEmit is called once with the root executables to bundle.
	OnPlanEmit(roots []string)

	// OnSpanStart is called when a unit of work begins.
	OnSpanStart(spanID, parentID, name string, startTime time.Time)

	// OnSpanLog is called when a unit of work emits output. Data may contain
	// partial lines.
	OnSpanLog(spanID string, data []byte)

	// OnSpanEnd is called when a unit of work finishes.
	OnSpanEnd(spanID string, endTime time.Time, err error)
}
