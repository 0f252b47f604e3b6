package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/emberkeep/spritebank"

// StartSpan begins a span on the globally registered tracer provider. When
// tracing is disabled the returned span records nothing, so callers do not
// need to guard on configuration.
func StartSpan(ctx context.Context, operation string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, operation,
		trace.WithSpanKind(trace.SpanKindInternal))
}
