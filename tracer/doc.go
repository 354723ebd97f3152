// Package tracer provides OpenTelemetry tracing for the request instrumentation.
//
// # Architecture
//
// The package follows the "accept interfaces, return structs" idiom:
//   - Tracer is the contract httpmetrics and sqlmetrics depend on
//   - Span is the contract for one traced operation
//   - NewClient returns the concrete *TracerClient
//   - FXModule provides both *TracerClient and Tracer
//
// # What gets traced
//
// When a Tracer is handed to httpmetrics and httpmetrics.Config.EnableTracing is
// set, every recorded request gets a server span named after its method and path
// label ("GET /users/{id}"), parented on any W3C traceparent header the caller sent.
// The span carries http.method, http.route and http.status_code attributes and is
// marked as failed for 5xx responses.
//
// With sqlmetrics.Config.EnableTracing, every gorm statement gets a child span named
// after its statement kind and table ("select orders") with db.system, db.name,
// db.statement and db.sql.table attributes.
//
// The logger's *WithContext methods pick the current span up, so request and query
// logs carry trace_id and span_id.
//
// # Basic usage
//
//	tr, err := tracer.NewClient(tracer.Config{
//		ServiceName:  "checkout",
//		AppEnv:       "staging",
//		EnableExport: true,
//		Endpoint:     "otel-collector:4318",
//		Insecure:     true,
//	})
//	if err != nil {
//		return err
//	}
//	defer tr.Shutdown(context.Background())
//
//	ctx, span := tr.StartSpan(ctx, "rebuild-cache")
//	defer span.End()
//
//	span.SetAttributes(map[string]interface{}{
//		"cache.entries": 1200,
//		"cache.name":    "prices",
//	})
//	if err := rebuild(ctx); err != nil {
//		span.RecordError(err)
//		return err
//	}
//
// Without EnableExport spans are still created and propagated, so trace IDs show up
// in logs and downstream calls, but nothing is shipped to a collector.
//
// # Sampling
//
// Config.SampleRatio between 0 and 1 samples that fraction of new traces. Requests
// arriving with a sampled parent are always sampled, so a trace is never cut in the
// middle of a call chain. Zero, the default, samples everything.
//
// # Propagation
//
// Incoming HTTP requests are joined to their caller's trace with ExtractHTTP, which
// httpmetrics does before starting the server span. Trace context can also cross
// non-HTTP boundaries, such as a job queue, as a plain map:
//
//	carrier := tr.GetCarrier(ctx) // {"traceparent": "00-...", "baggage": "..."}
//	job.Headers = carrier
//
//	// in the worker
//	ctx = tr.SetCarrierOnContext(context.Background(), job.Headers)
//	ctx, span := tr.StartSpan(ctx, "send-email")
//	defer span.End()
//
// Both W3C trace context and W3C baggage are propagated.
//
// # Configuration
//
//	TRACER_SERVICE_NAME=checkout     # service.name resource attribute
//	TRACER_APP_ENV=staging           # deployment.environment resource attribute
//	TRACER_ENABLE_EXPORT=true
//	TRACER_ENDPOINT=otel-collector:4318
//	TRACER_INSECURE=true
//	TRACER_SAMPLE_RATIO=0.1
//
// An empty endpoint defers to the standard OTEL_EXPORTER_OTLP_* variables.
//
// # Fx
//
//	app := fx.New(
//		tracer.FXModule,
//		fx.Provide(func() tracer.Config {
//			return tracer.Config{ServiceName: "checkout", EnableExport: true}
//		}),
//		fx.Invoke(func(t tracer.Tracer) {
//			// depend on the interface
//		}),
//	)
//
// The module flushes and shuts the provider down when the application stops.
//
// NewClient installs its provider and propagators as the OpenTelemetry globals.
package tracer
