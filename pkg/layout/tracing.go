package layout

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// startRenderSpan opens the layout.render_element span a Layout without an
// explicit Tracer still gets (backed by otel's no-op tracer provider).
func startRenderSpan(ctx context.Context, tracer trace.Tracer, elementID string) (context.Context, trace.Span) {
	if tracer == nil {
		tracer = trace.NewNoopTracerProvider().Tracer("layout")
	}
	return tracer.Start(ctx, "layout.render_element",
		trace.WithAttributes(attribute.String("layout.element_id", elementID)))
}
