package otelx

import (
	"context"

	"github.com/clinia/arangoschema/errorx"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
)

func newStdoutExporter(c *Config) (*stdouttrace.Exporter, error) {
	opts := []stdouttrace.Option{}
	if c.Providers.Stdout.Pretty {
		opts = append(opts, stdouttrace.WithPrettyPrint())
	}

	exp, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return exp, nil
}

func newOTLPExporter(c *Config) (*otlptrace.Exporter, error) {
	ctx := context.Background()
	otlp := c.Providers.OTLP

	var client otlptrace.Client
	switch otlp.Protocol {
	case "http":
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(otlp.ServerURL)}
		if otlp.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		client = otlptracehttp.NewClient(opts...)
	case "grpc":
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(otlp.ServerURL)}
		if otlp.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		client = otlptracegrpc.NewClient(opts...)
	default:
		return nil, errorx.InvalidArgumentErrorf("unknown OTLP protocol '%s', expected one of [http, grpc]", otlp.Protocol)
	}

	exp, err := otlptrace.New(ctx, client)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return exp, nil
}
