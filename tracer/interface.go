package tracer

import (
	"context"
	"net/http"
)

// Tracer starts spans and moves trace context across process boundaries.
// *TracerClient implements it.
type Tracer interface {
	// StartSpan starts an internal span as a child of the span in ctx, if any.
	StartSpan(ctx context.Context, name string) (context.Context, Span)

	// StartServerSpan starts a span of kind server, for handling an incoming request.
	StartServerSpan(ctx context.Context, name string) (context.Context, Span)

	// GetCarrier returns the W3C trace context and baggage of ctx as a map.
	GetCarrier(ctx context.Context) map[string]string

	// SetCarrierOnContext restores trace context previously captured by GetCarrier.
	SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context

	// ExtractHTTP restores trace context from incoming request headers.
	ExtractHTTP(ctx context.Context, header http.Header) context.Context
}

// Span is a single traced operation.
type Span interface {
	End()

	// SetName renames the span, for names only known once the operation is done.
	SetName(name string)

	// SetAttributes records attributes; values that are not strings, ints,
	// floats or bools are stored in their fmt.Sprint form.
	SetAttributes(attrs map[string]interface{})

	// RecordError records err and marks the span as failed.
	RecordError(err error)
}
