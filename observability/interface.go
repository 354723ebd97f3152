package observability

import (
	"context"
	"time"
)

// Observer receives a notification after every instrumented operation: one per HTTP
// request handled by httpmetrics and one per SQL statement timed by sqlmetrics.
//
// Observers run synchronously on the request path and must be safe for concurrent
// use. Instrumentation works the same with or without one.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes one completed operation.
type OperationContext struct {
	// Context is the context the operation ran under; it carries the trace span.
	// May be nil.
	Context context.Context

	// Component is the instrumenting package: "http" or "sql".
	Component string

	// Operation is the HTTP method, or the SQL statement kind ("select", "insert", ...).
	Operation string

	// Resource is the path label of a request, or the table of a query.
	Resource string

	// SubResource carries the response status of a request, or the database name
	// of a query.
	SubResource string

	Duration time.Duration

	// Error is non-nil for failed queries and for requests answered with a 5xx status.
	Error error

	// Size is the number of rows affected by a query. Unused for requests.
	Size int64

	// Metadata holds anything else worth logging, e.g. the normalized query text.
	Metadata map[string]interface{}
}
