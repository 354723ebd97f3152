package metrics

import "net/http"

// MetricsCollector creates metrics on the application registry. *Metrics
// implements it; the HTTP and SQL instrumentation depend only on this interface.
//
// Every metric created here carries the collector's constant labels. Creating two
// metrics with the same name panics, as with prometheus.MustRegister.
type MetricsCollector interface {
	// CreateCounter creates a counter vector:
	//   c := m.CreateCounter("http_requests_total", "Requests served", []string{"path", "method", "status"})
	//   c.WithLabelValues("/users/{id}", "GET", "200").Inc()
	CreateCounter(name, help string, labels []string) Counter

	// CreateHistogram creates a histogram vector. nil buckets mean
	// prometheus.DefBuckets.
	CreateHistogram(name, help string, labels []string, buckets []float64) Histogram

	// CreateGauge creates a gauge vector.
	CreateGauge(name, help string, labels []string) Gauge

	// CreateSummary creates a summary vector with the given quantile objectives.
	CreateSummary(name, help string, labels []string, objectives map[float64]float64) Summary

	// ScrapeHandler exposes everything the collector owns in the text format.
	ScrapeHandler() http.Handler
}
