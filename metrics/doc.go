// Package metrics owns the Prometheus registries and scrape endpoints of a service.
//
// Registries are explicit: nothing is registered on prometheus.DefaultRegisterer,
// so two instances in one process (or in one test binary) never collide.
//
// # Architecture
//
// The package follows the "accept interfaces, return structs" pattern:
//   - MetricsCollector is the contract the instrumentation packages depend on
//   - *Metrics implements it and additionally exposes the registries and servers
//   - NewMetrics returns the concrete *Metrics
//   - FXModule provides both *Metrics and MetricsCollector
//
// httpmetrics and sqlmetrics only ever see a MetricsCollector, so tests can hand
// them a fresh *Metrics per case and inspect ApplicationRegistry afterwards.
//
// # Registries
//
// The system registry holds the Go runtime, process and build info collectors. It
// is filled by NewMetrics and never touched again.
//
// The application registry holds every metric created through the MetricsCollector
// interface, which is how the httpmetrics and sqlmetrics packages create their
// request and query metrics. It starts empty.
//
// Keeping the two apart allows different scrape intervals and access rules for
// runtime internals and for the RED metrics that dashboards and alerts use.
//
// # Constant labels
//
// Application metrics carry a set of constant labels: "service", and unless
// Config.DisableProcessLabels is set, "environment", "program", "version",
// "hostname" and "ip". Config.DefaultLabels are added last and win on conflicts.
//
//	m := metrics.NewMetrics(metrics.Config{
//		ServiceName:   "checkout",
//		Environment:   "staging",
//		DefaultLabels: map[string]string{"team": "payments"},
//	})
//	// http_requests_total{environment="staging",hostname="web-1",ip="10.0.3.7",
//	//   program="checkout",service="checkout",team="payments",version="v1.4.2",...}
//
// System metrics carry only "service"; go_info and go_build_info define a version
// label of their own.
//
// The program, version, hostname and ip values come from the proc package and are
// computed once per process. Version falls back to the main module version from
// the binary's build info.
//
// # Exposition
//
// Each registry is served by its own http.Server (defaults ":9090" and ":9091") on
// Config.MetricsPath; any other path answers 404. An address set to the empty string
// disables that server:
//
//	m := metrics.NewMetrics(metrics.Config{
//		ServiceName:          "checkout",
//		SystemMetricsAddress: metrics.Ptr(""),
//	})
//
// To expose metrics on the application's own router instead, disable both servers
// and mount ScrapeHandler, which gathers both registries:
//
//	m := metrics.NewMetrics(metrics.Config{
//		ServiceName:               "checkout",
//		SystemMetricsAddress:      metrics.Ptr(""),
//		ApplicationMetricsAddress: metrics.Ptr(""),
//	})
//
//	r := chi.NewRouter()
//	r.Handle("/metrics", m.ScrapeHandler())
//
// httpmetrics never records requests to its own Config.MetricsPath, so a mounted
// scrape endpoint does not count itself.
//
// Without fx the servers are started by the caller:
//
//	go m.SystemServer.ListenAndServe()
//	go m.ApplicationServer.ListenAndServe()
//
// # Configuration
//
// Every Config field has an environment variable, read by the config package:
//
//	METRICS_SYSTEM_ADDRESS=:9090           # "" disables the system server
//	METRICS_APPLICATION_ADDRESS=:9091      # "" disables the application server
//	METRICS_PATH=/metrics
//	METRICS_SERVICE_NAME=checkout
//	METRICS_ENVIRONMENT=staging            # default "production"
//	METRICS_VERSION=v1.4.2                 # default: build info
//	METRICS_DEFAULT_LABELS=team:payments,tier:1
//	METRICS_DISABLE_PROCESS_LABELS=true
//
// # Creating metrics
//
// Counters only go up. Use them for totals such as processed jobs or failures:
//
//	processed := m.CreateCounter("jobs_processed_total", "Processed jobs", []string{"queue", "status"})
//	processed.WithLabelValues("emails", "ok").Inc()
//	processed.With(map[string]string{"queue": "emails", "status": "failed"}).Add(3)
//
// Gauges go up and down. Use them for current state:
//
//	depth := m.CreateGauge("queue_depth", "Jobs waiting", []string{"queue"})
//	depth.WithLabelValues("emails").Set(42)
//	depth.WithLabelValues("emails").Dec()
//
// Histograms bucket observations; Prometheus derives rates, averages and
// quantiles from them at query time. LatencyBuckets suits millisecond latencies
// from a quarter of a millisecond up to about 48 seconds:
//
//	latency := m.CreateHistogram("job_duration_milliseconds", "Job latency", []string{"queue"}, metrics.LatencyBuckets)
//	latency.With(map[string]string{"queue": "emails"}).Observe(12.5)
//
// Summaries compute quantiles in the process, which cannot be aggregated across
// instances; prefer histograms unless exact per-instance quantiles are needed:
//
//	sizes := m.CreateSummary("payload_bytes", "Payload sizes", []string{"queue"},
//		map[float64]float64{0.5: 0.05, 0.99: 0.001})
//	sizes.WithLabelValues("emails").Observe(2048)
//
// Reset drops every series of a vector, for metrics whose label values go away:
//
//	depth.Reset()
//
// Creating a second metric with an existing name panics, as prometheus.MustRegister
// does. Code that creates metrics from configuration, such as httpmetrics and
// sqlmetrics, turns that panic into a setup error.
//
// # Fx
//
// FXModule provides *Metrics and MetricsCollector from a Config and starts and
// gracefully stops the enabled servers with the application. A logger.Logger in the
// container is used for lifecycle logs when present:
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{ServiceName: "checkout"}
//		}),
//		fx.Invoke(func(m metrics.MetricsCollector) {
//			m.CreateGauge("build_ready", "Set once the service accepts traffic", nil).Set(1)
//		}),
//	)
//	app.Run()
//
// With the config package, config.FXModule supplies the metrics.Config section.
package metrics
