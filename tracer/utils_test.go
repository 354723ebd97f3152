package tracer

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func newTestClient(t *testing.T) (*TracerClient, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	client, err := NewClient(Config{ServiceName: "test", AppEnv: "test"}, sdktrace.WithSpanProcessor(recorder))
	require.NoError(t, err)
	return client, recorder
}

func TestStartSpan_IsRecordingAndInternal(t *testing.T) {
	t.Parallel()
	client, recorder := newTestClient(t)

	ctx, span := client.StartSpan(context.Background(), "test-op")
	assert.True(t, trace.SpanFromContext(ctx).IsRecording())
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "test-op", ended[0].Name())
	assert.Equal(t, trace.SpanKindInternal, ended[0].SpanKind())
}

func TestStartServerSpan_Kind(t *testing.T) {
	t.Parallel()
	client, recorder := newTestClient(t)

	_, span := client.StartServerSpan(context.Background(), "GET")
	span.SetName("GET /users/{id}")
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, trace.SpanKindServer, ended[0].SpanKind())
	assert.Equal(t, "GET /users/{id}", ended[0].Name())
}

func TestStartSpan_ChildInheritsParent(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t)

	parentCtx, parentSpan := client.StartSpan(context.Background(), "parent")
	defer parentSpan.End()

	childCtx, childSpan := client.StartSpan(parentCtx, "child")
	defer childSpan.End()

	assert.Equal(t,
		trace.SpanFromContext(parentCtx).SpanContext().TraceID(),
		trace.SpanFromContext(childCtx).SpanContext().TraceID(),
	)
}

func TestSetAttributes_AllTypes(t *testing.T) {
	t.Parallel()
	client, recorder := newTestClient(t)

	_, span := client.StartSpan(context.Background(), "attrs-op")
	span.SetAttributes(map[string]interface{}{
		"str":     "hello",
		"int":     42,
		"int64":   int64(100),
		"float64": 3.14,
		"bool":    true,
		"other":   []string{"a", "b"},
	})
	span.SetAttributes(map[string]interface{}{})
	span.End()

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range recorder.Ended()[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "hello", attrs["str"].AsString())
	assert.Equal(t, int64(42), attrs["int"].AsInt64())
	assert.Equal(t, int64(100), attrs["int64"].AsInt64())
	assert.Equal(t, 3.14, attrs["float64"].AsFloat64())
	assert.True(t, attrs["bool"].AsBool())
	assert.Equal(t, "[a b]", attrs["other"].AsString())
}

func TestRecordError(t *testing.T) {
	t.Parallel()
	client, recorder := newTestClient(t)

	_, span := client.StartSpan(context.Background(), "err-op")
	span.RecordError(nil)
	span.RecordError(errors.New("something went wrong"))
	span.End()

	status := recorder.Ended()[0].Status()
	assert.Equal(t, codes.Error, status.Code)
	assert.Equal(t, "something went wrong", status.Description)
}

func TestGetCarrier(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t)

	assert.NotContains(t, client.GetCarrier(context.Background()), "traceparent")

	ctx, span := client.StartSpan(context.Background(), "carrier-op")
	defer span.End()
	assert.Contains(t, client.GetCarrier(ctx), "traceparent")
}

func TestGetAndSetCarrier_RoundTrip(t *testing.T) {
	t.Parallel()
	client, _ := newTestClient(t)

	ctx, span := client.StartSpan(context.Background(), "roundtrip-op")
	defer span.End()

	restored := client.SetCarrierOnContext(context.Background(), client.GetCarrier(ctx))

	original := trace.SpanFromContext(ctx).SpanContext()
	got := trace.SpanContextFromContext(restored)
	assert.True(t, got.IsValid())
	assert.True(t, got.IsRemote())
	assert.Equal(t, original.TraceID(), got.TraceID())

	assert.NotNil(t, client.SetCarrierOnContext(context.Background(), map[string]string{}))
}

func TestExtractHTTP_ParentsServerSpan(t *testing.T) {
	t.Parallel()
	client, recorder := newTestClient(t)

	upstreamCtx, upstream := client.StartSpan(context.Background(), "upstream")
	header := http.Header{}
	for k, v := range client.GetCarrier(upstreamCtx) {
		header.Set(k, v)
	}
	upstream.End()

	ctx := client.ExtractHTTP(context.Background(), header)
	_, server := client.StartServerSpan(ctx, "GET /orders")
	server.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, ended[0].SpanContext().TraceID(), ended[1].SpanContext().TraceID())
	assert.Equal(t, ended[0].SpanContext().SpanID(), ended[1].Parent().SpanID())
}

func TestTextMapPropagator_ZeroClient(t *testing.T) {
	t.Parallel()
	assert.NotNil(t, (&TracerClient{}).textMapPropagator())
}
