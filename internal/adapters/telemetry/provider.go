// Package telemetry implements the tracing port on OpenTelemetry and
// streams span output to the renderer.
package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/relo/internal/core/ports"
)

// LogBufferSize determines the size of the async log channel.
const LogBufferSize = 4096

// OTelTracer is a concrete implementation of ports.Tracer using OpenTelemetry.
type OTelTracer struct {
	tracer   trace.Tracer
	renderer ports.Renderer
	logChan  chan rendererMsg
	mu       sync.RWMutex
}

// rendererMsg is one queued renderer callback: a plan announcement, a
// chunk of span log data, or a flush barrier.
type rendererMsg struct {
	plan   []string
	spanID string
	data   []byte
	flush  chan struct{}
}

// NewOTelTracer creates a new OTelTracer with the given instrumentation name.
func NewOTelTracer(name string) *OTelTracer {
	t := &OTelTracer{
		tracer:  otel.Tracer(name),
		logChan: make(chan rendererMsg, LogBufferSize), // Buffered to handle bursts
	}
	go t.runLoop()
	return t
}

func (t *OTelTracer) runLoop() {
	for msg := range t.logChan {
		if msg.flush != nil {
			// Barrier: everything queued ahead of it has been delivered.
			close(msg.flush)
			continue
		}

		t.mu.RLock()
		renderer := t.renderer
		t.mu.RUnlock()

		if renderer == nil {
			continue
		}
		if msg.plan != nil {
			renderer.OnPlanEmit(msg.plan)
		} else {
			renderer.OnSpanLog(msg.spanID, msg.data)
		}
	}
}

// drainLogs blocks until every message queued before the call has been
// handed to the renderer.
func (t *OTelTracer) drainLogs() {
	done := make(chan struct{})
	t.logChan <- rendererMsg{flush: done}
	<-done
}

// Shutdown stops the background log processor.
func (t *OTelTracer) Shutdown(_ context.Context) error {
	close(t.logChan)
	return nil
}

// WithRenderer sets the renderer that receives streamed span logs.
func (t *OTelTracer) WithRenderer(r ports.Renderer) *OTelTracer {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.renderer = r
	return t
}

// Start creates a new span.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, span := t.tracer.Start(ctx, name)

	t.mu.RLock()
	renderer := t.renderer
	t.mu.RUnlock()

	var batcher *LogBatcher
	if renderer != nil {
		spanID := span.SpanContext().SpanID().String()
		cb := func(data []byte) {
			select {
			case t.logChan <- rendererMsg{spanID: spanID, data: data}:
			default:
				// Drop logs if the buffer is full to avoid blocking the bundle
			}
		}
		batcher = NewLogBatcher(0, 0, cb)
	}

	return ctx, &OTelSpan{span: span, batcher: batcher, drain: t.drainLogs}
}

// EmitPlan signals the set of root executables planned for bundling by
// adding an event to the current span and notifying the renderer.
func (t *OTelTracer) EmitPlan(ctx context.Context, roots []string) {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.AddEvent("plan_emitted", trace.WithAttributes(
			attribute.StringSlice("executables", roots),
		))
	}

	t.mu.RLock()
	renderer := t.renderer
	t.mu.RUnlock()

	if renderer != nil {
		msg := rendererMsg{plan: roots}
		select {
		case t.logChan <- msg:
		default:
			// The plan must reach the renderer even when the buffer is full
			t.logChan <- msg
		}
	}
}

// OTelSpan is a concrete implementation of ports.Span using OpenTelemetry.
type OTelSpan struct {
	span    trace.Span
	batcher *LogBatcher
	drain   func()
}

// End completes the span. The batcher's final flush is driven through the
// renderer queue first, so trailing log lines land before the renderer
// sees the span end and discards its state.
func (s *OTelSpan) End() {
	if s.batcher != nil {
		_ = s.batcher.Close()
		if s.drain != nil {
			s.drain()
		}
	}
	s.span.End()
}

// RecordError records an error for the span.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute adds a key-value pair to the span.
func (s *OTelSpan) SetAttribute(key string, value any) {
	switch v := value.(type) {
	case string:
		s.span.SetAttributes(attribute.String(key, v))
	case int:
		s.span.SetAttributes(attribute.Int(key, v))
	case int64:
		s.span.SetAttributes(attribute.Int64(key, v))
	case float64:
		s.span.SetAttributes(attribute.Float64(key, v))
	case bool:
		s.span.SetAttributes(attribute.Bool(key, v))
	case []string:
		s.span.SetAttributes(attribute.StringSlice(key, v))
	default:
		s.span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
	}
}

// Write satisfies io.Writer by adding a log event to the span or writing to the batcher.
func (s *OTelSpan) Write(p []byte) (n int, err error) {
	if s.batcher != nil {
		return s.batcher.Write(p)
	}
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}
