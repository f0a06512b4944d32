package tracex

import (
	"context"

	"github.com/clinia/arangoschema/logrusx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const ComponentNameSeparator = "."

func ComponentName(packageName, structName string) string {
	return packageName + ComponentNameSeparator + structName
}

/*
Instrument starts a span named after the component and returns a logger
carrying the span attributes. `span.End()` must be called by the caller.

	const blueprintComponentName = "schema.Blueprint"

	ctx, span, l := tracex.Instrument(ctx, b.l, b.tracer, blueprintComponentName, "build")
	defer span.End()
*/
func Instrument(ctx context.Context, l *logrusx.Logger, tracer trace.Tracer, componentName string, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span, *logrusx.Logger) {
	fullComponentName := ComponentName(componentName, name)
	ctx, span := tracer.Start(ctx, fullComponentName, opts...)

	l = l.WithContext(ctx).
		WithSpanStartOptions(opts...).
		WithAttributes(attribute.String("component", fullComponentName))

	return ctx, span, l
}
