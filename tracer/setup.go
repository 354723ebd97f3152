package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// instrumentationName identifies the spans created by this module.
const instrumentationName = "github.com/aalemi-dev/redmetrics"

// TracerClient wraps an OpenTelemetry TracerProvider. It implements Tracer.
type TracerClient struct {
	tracer     *trace.TracerProvider
	propagator propagation.TextMapPropagator
}

// NewClient builds a TracerProvider from cfg, installs it and the W3C propagators
// as the OpenTelemetry globals and returns a client over it.
//
// Extra provider options are appended last; tests use them to attach a
// tracetest.SpanRecorder.
func NewClient(cfg Config, opts ...trace.TracerProviderOption) (*TracerClient, error) {
	return newClientWithContext(context.Background(), cfg, opts...)
}

func newClientWithContext(ctx context.Context, cfg Config, opts ...trace.TracerProviderOption) (*TracerClient, error) {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		var clientOpts []otlptracehttp.Option
		if cfg.Endpoint != "" {
			clientOpts = append(clientOpts, otlptracehttp.WithEndpoint(cfg.Endpoint))
		}
		if cfg.Insecure {
			clientOpts = append(clientOpts, otlptracehttp.WithInsecure())
		}

		exporter, err := otlptrace.New(ctx, otlptracehttp.NewClient(clientOpts...))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OTLP exporter: %w", err)
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	if cfg.SampleRatio > 0 && cfg.SampleRatio < 1 {
		options = append(options, trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(cfg.SampleRatio))))
	}

	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))
	options = append(options, opts...)

	tp := trace.NewTracerProvider(options...)
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagator)

	return &TracerClient{tracer: tp, propagator: propagator}, nil
}

// Shutdown flushes pending spans and stops the provider.
func (t *TracerClient) Shutdown(ctx context.Context) error {
	if t == nil || t.tracer == nil {
		return nil
	}
	return t.tracer.Shutdown(ctx)
}
