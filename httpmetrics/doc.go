// Package httpmetrics records RED metrics (rate, errors, duration) for HTTP servers.
//
// Every request that is not excluded increments a counter and observes a latency
// histogram, both labelled by path, method and status:
//
//	http_requests_total{path="/users/{id}",method="GET",status="200"}
//	http_requests_duration_milliseconds_bucket{path="/users/{id}",method="GET",status="200",le="12.8"}
//
// # Path labels
//
// Raw paths carry IDs and would give every user their own time series, so the path
// label is resolved in this order:
//
//  1. a PathLabeler supplied with WithPathLabeler,
//  2. the pattern reported by the router (ServeMux, chi, gorilla/mux, gin, fiber),
//     unless it is a catch-all such as "/", "/static/" or "/*" and rules are
//     configured,
//  3. the raw path run through the configured pathnorm rules.
//
// Config.MaxPathLabels additionally caps the number of distinct values; later
// newcomers are recorded as Config.OverflowLabel. Requests to Config.MetricsPath and
// Config.ExcludePaths are not recorded at all.
//
// # Extra labels
//
// Config.ExtraLabels declares further labels, such as a tenant or cluster, appended
// after the built-in ones. Their values come from a LabelMaker supplied with
// WithLabelMaker, which sees the request context, or from handlers calling
// SetLabel on the Observation found with ObservationFromContext. Labels without a
// value are recorded as "".
//
//	rec, err := httpmetrics.NewRecorder(httpmetrics.Config{ExtraLabels: []string{"tenant"}}, m,
//		httpmetrics.WithLabelMaker(func(ctx context.Context, _ httpmetrics.RequestLabels) map[string]string {
//			return map[string]string{"tenant": auth.TenantFrom(ctx)}
//		}),
//	)
//
// # Usage
//
//	m := metrics.NewMetrics(metrics.Config{ServiceName: "checkout"})
//	rec, err := httpmetrics.NewRecorder(httpmetrics.Config{
//		Rules: []pathnorm.Rule{{Pattern: `/users/\d+`}},
//	}, m)
//	if err != nil {
//		return err
//	}
//
//	r := chi.NewRouter()
//	r.Get("/users/{id}", getUser)
//	http.ListenAndServe(":8080", rec.Wrap(r))
//
// Registering twice is harmless: a request already observed by an outer instance is
// passed through by inner ones, which only report the route pattern they see.
//
// Frameworks that do not speak net/http use Begin and Finish directly; see the
// ginmetrics and fibermetrics packages.
package httpmetrics
