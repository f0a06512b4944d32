package otelx

import (
	"compress/gzip"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/clinia/arangoschema/errorx"
	"github.com/clinia/arangoschema/logrusx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	tracepb "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
)

func decodeRequestBody(t *testing.T, r *http.Request) []byte {
	var reader io.ReadCloser = r.Body
	if r.Header.Get("Content-Encoding") == "gzip" {
		var err error
		reader, err = gzip.NewReader(r.Body)
		require.NoError(t, err)
	}

	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	return body
}

func assertSingleSpan(t *testing.T, req *tracepb.ExportTraceServiceRequest) {
	spans := req.GetResourceSpans()[0].GetScopeSpans()[0].GetSpans()
	assert.Len(t, spans, 1)
	assert.NotEmpty(t, spans[0].GetSpanId())
	assert.NotEmpty(t, spans[0].GetTraceId())
	assert.Equal(t, "schema.Blueprint.Build", spans[0].GetName())
	assert.Equal(t, "collection", spans[0].GetAttributes()[0].GetKey())
}

func emitSpan(t *testing.T, tr *Tracer) {
	_, span := tr.Tracer().Start(context.Background(), "schema.Blueprint.Build")
	span.SetAttributes(attribute.String("collection", "users"))
	span.End()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	require.NoError(t, tr.Shutdown(ctx))
}

func TestHTTPOTLPTracer(t *testing.T) {
	done := make(chan struct{})
	var once sync.Once

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req tracepb.ExportTraceServiceRequest
		require.NoError(t, proto.Unmarshal(decodeRequestBody(t, r), &req), "must be able to unmarshal traces")
		assertSingleSpan(t, &req)

		once.Do(func() { close(done) })
	}))
	defer ts.Close()

	tsu, err := url.Parse(ts.URL)
	require.NoError(t, err)

	tr, err := New("arangoschema", logrusx.NewDiscard(), &Config{
		ServiceName: "arangoschema",
		Provider:    "otel",
		Providers: ProvidersConfig{
			OTLP: OTLPConfig{
				Protocol:  "http",
				ServerURL: tsu.Host,
				Insecure:  true,
				Sampling: OTLPSampling{
					SamplingRatio: 1,
				},
			},
		},
	})
	require.NoError(t, err)
	assert.True(t, tr.IsLoaded())
	assert.NotNil(t, tr.TextMapPropagator())

	emitSpan(t, tr)

	select {
	case <-done:
	case <-time.After(15 * time.Second):
		t.Fatalf("Test server did not receive spans")
	}
}

type traceServiceServer struct {
	tracepb.UnimplementedTraceServiceServer
	t    *testing.T
	once sync.Once
	done chan struct{}
}

func (s *traceServiceServer) Export(_ context.Context, req *tracepb.ExportTraceServiceRequest) (*tracepb.ExportTraceServiceResponse, error) {
	assertSingleSpan(s.t, req)
	s.once.Do(func() { close(s.done) })

	return &tracepb.ExportTraceServiceResponse{}, nil
}

func TestGRPCOTLPTracer(t *testing.T) {
	grpcServer := grpc.NewServer()
	service := &traceServiceServer{t: t, done: make(chan struct{})}
	tracepb.RegisterTraceServiceServer(grpcServer, service)

	lis, err := net.Listen("tcp", "localhost:0")
	require.NoError(t, err)
	go func() {
		_ = grpcServer.Serve(lis)
	}()
	defer grpcServer.Stop()

	tr, err := New("arangoschema", logrusx.NewDiscard(), &Config{
		ServiceName: "arangoschema",
		Provider:    "otel",
		Providers: ProvidersConfig{
			OTLP: OTLPConfig{
				Protocol:  "grpc",
				ServerURL: lis.Addr().String(),
				Insecure:  true,
				Sampling: OTLPSampling{
					SamplingRatio: 1,
				},
			},
		},
	})
	require.NoError(t, err)

	emitSpan(t, tr)

	select {
	case <-service.done:
	case <-time.After(15 * time.Second):
		t.Fatalf("Test server did not receive spans")
	}
}

func TestNew(t *testing.T) {
	l := logrusx.NewDiscard()

	t.Run("should fall back to a noop tracer without provider", func(t *testing.T) {
		tr, err := New("arangoschema", l, &Config{})
		require.NoError(t, err)
		assert.True(t, tr.IsLoaded())

		_, span := tr.Tracer().Start(context.Background(), "noop")
		assert.False(t, span.SpanContext().IsValid())
		assert.NoError(t, tr.Shutdown(context.Background()))
	})

	t.Run("should configure the stdout exporter", func(t *testing.T) {
		tr, err := New("arangoschema", l, &Config{Provider: "stdout"})
		require.NoError(t, err)

		_, span := tr.Tracer().Start(context.Background(), "stdout")
		assert.True(t, span.SpanContext().IsValid())
		span.End()
		assert.NoError(t, tr.Shutdown(context.Background()))
	})

	t.Run("should reject unknown providers and protocols", func(t *testing.T) {
		_, err := New("arangoschema", l, &Config{Provider: "zipkin"})
		assert.True(t, errorx.IsInvalidArgumentError(err))

		_, err = New("arangoschema", l, &Config{Provider: "otel", Providers: ProvidersConfig{OTLP: OTLPConfig{Protocol: "udp"}}})
		assert.True(t, errorx.IsInvalidArgumentError(err))
	})

	t.Run("should report an unloaded tracer", func(t *testing.T) {
		var tr *Tracer
		assert.False(t, tr.IsLoaded())
	})
}
