package otelx

import (
	"context"

	"github.com/clinia/arangoschema/errorx"
	"github.com/clinia/arangoschema/logrusx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type Tracer struct {
	tracer     trace.Tracer
	provider   *sdktrace.TracerProvider
	propagator propagation.TextMapPropagator
}

// New creates a tracer exporting its spans as configured.
func New(name string, l *logrusx.Logger, c *Config) (*Tracer, error) {
	t := &Tracer{}

	if err := t.setup(name, l, c); err != nil {
		return nil, err
	}

	return t, nil
}

// NewNoop creates a tracer dropping every span.
func NewNoop() *Tracer {
	return &Tracer{
		tracer:     noop.NewTracerProvider().Tracer(""),
		propagator: propagation.NewCompositeTextMapPropagator(),
	}
}

func (t *Tracer) setup(name string, l *logrusx.Logger, c *Config) error {
	var (
		exp sdktrace.SpanExporter
		err error
	)

	ratio := c.Providers.OTLP.Sampling.SamplingRatio
	switch c.Provider {
	case "otel":
		exp, err = newOTLPExporter(c)
		if err != nil {
			return err
		}
		l.Infof("OTLP tracer configured! Sending spans to %s", c.Providers.OTLP.ServerURL)
	case "stdout":
		exp, err = newStdoutExporter(c)
		if err != nil {
			return err
		}
		ratio = 1
		l.Infof("Stdout tracer configured! Sending spans to stdout")
	case "":
		l.Infof("Missing provider in config - skipping tracing setup")
		*t = *NewNoop()
		return nil
	default:
		return errorx.InvalidArgumentErrorf("unknown tracing provider '%s', expected one of [otel, stdout]", c.Provider)
	}

	t.provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", c.ServiceName),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	)
	t.tracer = t.provider.Tracer(name)
	t.propagator = propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)

	return nil
}

// IsLoaded returns true if the tracer has been loaded.
func (t *Tracer) IsLoaded() bool {
	if t == nil || t.tracer == nil {
		return false
	}
	return true
}

// Tracer returns the underlying OpenTelemetry tracer.
func (t *Tracer) Tracer() trace.Tracer {
	return t.tracer
}

// TextMapPropagator returns the underlying OpenTelemetry textMapPropagator.
func (t *Tracer) TextMapPropagator() propagation.TextMapPropagator {
	return t.propagator
}

// Shutdown flushes the pending spans and stops the exporter.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
