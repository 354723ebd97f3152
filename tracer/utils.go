package tracer

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	traceSpan "go.opentelemetry.io/otel/trace"
)

type spanImpl struct {
	span traceSpan.Span
}

func (s *spanImpl) End() {
	s.span.End()
}

func (s *spanImpl) SetName(name string) {
	s.span.SetName(name)
}

func (s *spanImpl) SetAttributes(attrs map[string]interface{}) {
	if len(attrs) == 0 {
		return
	}

	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		switch val := v.(type) {
		case string:
			kvs = append(kvs, attribute.String(k, val))
		case int:
			kvs = append(kvs, attribute.Int(k, val))
		case int64:
			kvs = append(kvs, attribute.Int64(k, val))
		case float64:
			kvs = append(kvs, attribute.Float64(k, val))
		case bool:
			kvs = append(kvs, attribute.Bool(k, val))
		default:
			kvs = append(kvs, attribute.String(k, fmt.Sprint(val)))
		}
	}

	s.span.SetAttributes(kvs...)
}

func (s *spanImpl) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// StartSpan starts an internal span as a child of the span in ctx, if any. The
// returned context carries the new span.
func (t *TracerClient) StartSpan(ctx context.Context, name string) (context.Context, Span) {
	return t.start(ctx, name, traceSpan.SpanKindInternal)
}

// StartServerSpan starts a span of kind server, for handling an incoming request.
func (t *TracerClient) StartServerSpan(ctx context.Context, name string) (context.Context, Span) {
	return t.start(ctx, name, traceSpan.SpanKindServer)
}

func (t *TracerClient) start(ctx context.Context, name string, kind traceSpan.SpanKind) (context.Context, Span) {
	ctx, span := t.tracer.Tracer(instrumentationName).Start(ctx, name, traceSpan.WithSpanKind(kind))
	return ctx, &spanImpl{span: span}
}

// GetCarrier returns the trace context and baggage of ctx as a map, e.g. for
// message headers.
func (t *TracerClient) GetCarrier(ctx context.Context) map[string]string {
	carrier := propagation.MapCarrier{}
	t.textMapPropagator().Inject(ctx, carrier)
	return carrier
}

// SetCarrierOnContext restores trace context captured by GetCarrier.
func (t *TracerClient) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	return t.textMapPropagator().Extract(ctx, propagation.MapCarrier(carrier))
}

// ExtractHTTP restores the caller's trace context from request headers.
func (t *TracerClient) ExtractHTTP(ctx context.Context, header http.Header) context.Context {
	return t.textMapPropagator().Extract(ctx, propagation.HeaderCarrier(header))
}

func (t *TracerClient) textMapPropagator() propagation.TextMapPropagator {
	if t.propagator == nil {
		return propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	}
	return t.propagator
}
