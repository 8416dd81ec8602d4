package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/relo/internal/core/ports"
)

// Bridge is an sdktrace.SpanProcessor that forwards span lifecycle events
// to the renderer, so each bundling stage appears as it starts and ends.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a new Bridge.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// spanID extracts a usable span identifier, or "" for invalid contexts.
func spanID(sc trace.SpanContext) string {
	if !sc.IsValid() {
		return ""
	}
	return sc.SpanID().String()
}

// OnStart forwards the span start to the renderer, with its parent span id
// when the parent context carries one.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil {
		return
	}

	id := spanID(s.SpanContext())
	if id == "" {
		return
	}

	parentID := spanID(trace.SpanFromContext(parent).SpanContext())
	b.renderer.OnSpanStart(id, parentID, s.Name(), s.StartTime())
}

// OnEnd forwards the span end. An error status is materialized back into an
// error value for the renderer.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil {
		return
	}

	id := spanID(s.SpanContext())
	if id == "" {
		return
	}

	var err error
	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "bundling failed"
		}
		err = errors.New(desc)
	}

	b.renderer.OnSpanEnd(id, s.EndTime(), err)
}

// ForceFlush does nothing; span events are forwarded synchronously.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
