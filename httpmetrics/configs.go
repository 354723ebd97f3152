package httpmetrics

import "github.com/aalemi-dev/redmetrics/pathnorm"

// Defaults applied by NewRecorder.
const (
	DefaultMetricsPath         = "/metrics"
	DefaultRequestsCounterName = "http_requests_total"
	DefaultRequestDurationName = "http_requests_duration_milliseconds"
	DefaultOverflowLabel       = "/__other__"
)

// Config defines how requests are labelled and which metrics they are recorded in.
type Config struct {
	// Rules rewrite dynamic parts of raw paths that no router pattern covers.
	// They are applied in order; see pathnorm for the matching semantics.
	Rules []pathnorm.Rule `yaml:"rules" ignored:"true"`

	// Replacement is the token written by rules without their own replacement.
	// Defaults to pathnorm.DefaultReplacement.
	//
	// Environment variable: HTTPMETRICS_REPLACEMENT
	Replacement string `yaml:"replacement" envconfig:"HTTPMETRICS_REPLACEMENT"`

	// MetricsPath is never recorded, so scrapes do not count themselves.
	// Defaults to "/metrics".
	//
	// Environment variable: HTTPMETRICS_METRICS_PATH
	MetricsPath string `yaml:"metrics_path" envconfig:"HTTPMETRICS_METRICS_PATH"`

	// ExcludePaths are further sanitized paths that are never recorded, such as
	// health checks.
	//
	// Environment variable: HTTPMETRICS_EXCLUDE_PATHS (comma separated)
	ExcludePaths []string `yaml:"exclude_paths" envconfig:"HTTPMETRICS_EXCLUDE_PATHS"`

	// RequestsCounterName defaults to "http_requests_total".
	//
	// Environment variable: HTTPMETRICS_REQUESTS_COUNTER_NAME
	RequestsCounterName string `yaml:"requests_counter_name" envconfig:"HTTPMETRICS_REQUESTS_COUNTER_NAME"`

	// RequestDurationName defaults to "http_requests_duration_milliseconds".
	//
	// Environment variable: HTTPMETRICS_REQUEST_DURATION_NAME
	RequestDurationName string `yaml:"request_duration_name" envconfig:"HTTPMETRICS_REQUEST_DURATION_NAME"`

	// DurationBuckets are the histogram buckets in milliseconds. Defaults to
	// metrics.LatencyBuckets.
	//
	// Environment variable: HTTPMETRICS_DURATION_BUCKETS (comma separated)
	DurationBuckets []float64 `yaml:"duration_buckets" envconfig:"HTTPMETRICS_DURATION_BUCKETS"`

	// IncludeDomain adds a "domain" label holding the request host without port.
	//
	// Environment variable: HTTPMETRICS_INCLUDE_DOMAIN
	IncludeDomain bool `yaml:"include_domain" envconfig:"HTTPMETRICS_INCLUDE_DOMAIN"`

	// ExtraLabels declares further labels, such as "tenant" or "cluster", added
	// after the built-in ones. Values come from the LabelMaker option or
	// Observation.SetLabel. The names path, method, status and domain are reserved.
	//
	// Environment variable: HTTPMETRICS_EXTRA_LABELS (comma separated)
	ExtraLabels []string `yaml:"extra_labels" envconfig:"HTTPMETRICS_EXTRA_LABELS"`

	// MaxPathLabels caps the number of distinct path label values. Once reached,
	// new values are recorded as OverflowLabel. Zero means no cap.
	//
	// Environment variable: HTTPMETRICS_MAX_PATH_LABELS
	MaxPathLabels int `yaml:"max_path_labels" envconfig:"HTTPMETRICS_MAX_PATH_LABELS"`

	// OverflowLabel defaults to "/__other__".
	//
	// Environment variable: HTTPMETRICS_OVERFLOW_LABEL
	OverflowLabel string `yaml:"overflow_label" envconfig:"HTTPMETRICS_OVERFLOW_LABEL"`

	// DisableRoutePattern ignores router patterns and labels every request by its
	// normalized raw path.
	//
	// Environment variable: HTTPMETRICS_DISABLE_ROUTE_PATTERN
	DisableRoutePattern bool `yaml:"disable_route_pattern" envconfig:"HTTPMETRICS_DISABLE_ROUTE_PATTERN"`

	// EnableTracing records a server span per request when a tracer is supplied.
	//
	// Environment variable: HTTPMETRICS_ENABLE_TRACING
	EnableTracing bool `yaml:"enable_tracing" envconfig:"HTTPMETRICS_ENABLE_TRACING"`
}
