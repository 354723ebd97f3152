package metrics

import "github.com/prometheus/client_golang/prometheus"

// Defaults applied by NewMetrics.
const (
	DefaultSystemMetricsAddress      = ":9090"
	DefaultApplicationMetricsAddress = ":9091"
	DefaultMetricsPath               = "/metrics"
	DefaultEnvironment               = "production"
)

// LatencyBuckets are millisecond buckets growing geometrically by 1.5 from 0.25ms,
// covering sub-millisecond handlers up to roughly 48 seconds.
var LatencyBuckets = prometheus.ExponentialBuckets(0.25, 1.5, 31)

// Config defines the configuration structure for the Prometheus metrics servers.
//
// Two registries are kept: the system registry (Go runtime, process and build
// info collectors) and the application registry (everything created through
// CreateCounter and friends, including the HTTP and SQL metrics). Each one can be
// served on its own address; either can also be mounted on the host application's
// router through ScrapeHandler.
type Config struct {
	// SystemMetricsAddress is the listen address of the system metrics server.
	// nil means DefaultSystemMetricsAddress, an empty string disables the server.
	//
	// Environment variable: METRICS_SYSTEM_ADDRESS
	SystemMetricsAddress *string `yaml:"system_metrics_address" envconfig:"METRICS_SYSTEM_ADDRESS"`

	// ApplicationMetricsAddress is the listen address of the application metrics
	// server. nil means DefaultApplicationMetricsAddress, an empty string disables it.
	//
	// Environment variable: METRICS_APPLICATION_ADDRESS
	ApplicationMetricsAddress *string `yaml:"application_metrics_address" envconfig:"METRICS_APPLICATION_ADDRESS"`

	// MetricsPath is the route both servers answer on. Defaults to "/metrics".
	//
	// Environment variable: METRICS_PATH
	MetricsPath string `yaml:"metrics_path" envconfig:"METRICS_PATH"`

	// ServiceName is attached to every metric as the "service" label.
	//
	// Environment variable: METRICS_SERVICE_NAME
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`

	// Environment is attached as the "environment" label. Defaults to "production".
	//
	// Environment variable: METRICS_ENVIRONMENT
	Environment string `yaml:"environment" envconfig:"METRICS_ENVIRONMENT"`

	// Version is attached as the "version" label. Defaults to the main module
	// version from the binary's build info.
	//
	// Environment variable: METRICS_VERSION
	Version string `yaml:"version" envconfig:"METRICS_VERSION"`

	// DefaultLabels are extra constant labels for every metric. They override the
	// built-in labels of the same name.
	//
	// Environment variable: METRICS_DEFAULT_LABELS (key:value pairs, comma separated)
	DefaultLabels map[string]string `yaml:"default_labels" envconfig:"METRICS_DEFAULT_LABELS"`

	// DisableProcessLabels drops the environment, program, version, hostname and ip
	// labels, leaving only service and DefaultLabels.
	//
	// Environment variable: METRICS_DISABLE_PROCESS_LABELS
	DisableProcessLabels bool `yaml:"disable_process_labels" envconfig:"METRICS_DISABLE_PROCESS_LABELS"`
}

// Ptr returns a pointer to s, for the address fields:
//
//	cfg := metrics.Config{SystemMetricsAddress: metrics.Ptr("")} // system server off
func Ptr(s string) *string {
	return &s
}
