// Package observability defines the hook through which the HTTP and SQL
// instrumentation report each completed operation.
//
// Metrics cover aggregates; an Observer sees individual operations. Typical uses are
// logging failures and slow queries, feeding an audit trail or sampling requests for
// debugging.
//
// # Architecture
//
//   - Observer is the single-method interface instrumentation calls
//   - OperationContext describes one completed operation
//   - NoOpObserver discards everything
//   - LogObserver writes operations to a logger.Logger
//   - Multi fans one notification out to several observers
//
// Components that accept an Observer treat it as optional: without one they record
// metrics exactly the same way.
//
// # What is reported
//
// httpmetrics reports one operation per recorded request:
//
//	Component:   "http"
//	Operation:   method, e.g. "GET"
//	Resource:    path label, e.g. "/users/{id}"
//	SubResource: status, e.g. "200"
//	Error:       non-nil for 5xx responses
//	Metadata:    "host" and every configured extra label
//
// sqlmetrics reports one operation per gorm statement:
//
//	Component:   "sql"
//	Operation:   statement kind, e.g. "select"
//	Resource:    table
//	SubResource: database name
//	Size:        rows affected
//	Error:       the statement error; gorm.ErrRecordNotFound is not one
//	Metadata:    "query", "dbhost" and "error_code" (SQLSTATE or MySQL error number)
//
// OperationContext.Context is the request or statement context, so observers can
// log with trace IDs or read request-scoped values.
//
// # Logging observer
//
// NewLogObserver logs failed operations as errors, operations at or above a
// threshold as warnings and everything else at debug level:
//
//	obs := observability.NewLogObserver(log, 250*time.Millisecond)
//	rec, err := httpmetrics.NewRecorder(cfg, m, httpmetrics.WithObserver(obs))
//
// # Combining observers
//
//	obs := observability.Multi(
//		observability.NewLogObserver(log, 250*time.Millisecond),
//		myAuditObserver,
//	)
//
// Nil observers passed to Multi are skipped.
//
// # Writing an observer
//
// Observers run synchronously on the request path, after the response has been
// written, and must be safe for concurrent use. Anything slow belongs on a channel:
//
//	type auditObserver struct{ events chan<- observability.OperationContext }
//
//	func (a auditObserver) ObserveOperation(oc observability.OperationContext) {
//		if oc.Component != "sql" || oc.Operation == "select" {
//			return
//		}
//		select {
//		case a.events <- oc:
//		default: // drop rather than block requests
//		}
//	}
package observability
