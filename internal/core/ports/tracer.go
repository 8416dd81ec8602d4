package ports

import "context"

// SpanConfig holds configuration applied by SpanOptions.
type SpanConfig struct{}

// SpanOption configures span creation.
type SpanOption func(*SpanConfig)

// Span is one traced unit of work: a binary being copied and patched, an
// artifact stage, or the whole run. Spans double as writers so external tool
// output can be streamed into the renderer.
type Span interface {
	// End completes the span.
	End()

	// RecordError marks the span as failed.
	RecordError(err error)

	// SetAttribute attaches a key/value pair to the span.
	SetAttribute(key string, value any)

	// Write streams raw output attributed to this span.
	Write(p []byte) (int, error)
}

// Tracer creates spans and publishes run-level events.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// Start creates a span as a child of the span in ctx, if any.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)

	// EmitPlan signals the set of root executables about to be bundled.
	EmitPlan(ctx context.Context, roots []string)

	// Shutdown flushes and stops the tracer.
	Shutdown(ctx context.Context) error
}
