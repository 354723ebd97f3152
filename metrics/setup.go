package metrics

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aalemi-dev/redmetrics/proc"
)

// Metrics owns the system and application registries and the HTTP servers that
// expose them. It implements MetricsCollector.
type Metrics struct {
	// SystemServer serves SystemRegistry. nil when disabled.
	SystemServer *http.Server

	// ApplicationServer serves ApplicationRegistry. nil when disabled.
	ApplicationServer *http.Server

	// SystemRegistry holds the Go runtime, process and build info collectors.
	SystemRegistry *prometheus.Registry

	// ApplicationRegistry holds every metric created through this instance.
	ApplicationRegistry *prometheus.Registry

	// ConstLabels are attached to every application metric. System metrics carry
	// only the service label; go_info and go_build_info define their own version label.
	ConstLabels prometheus.Labels

	metricsPath                  string
	wrappedApplicationRegisterer prometheus.Registerer
}

// NewMetrics builds both registries and, for every enabled address, a server
// answering on MetricsPath.
//
// The registries exist even when their servers are disabled, so metrics can still
// be created and scraped through ScrapeHandler.
func NewMetrics(cfg Config) *Metrics {
	m := &Metrics{
		SystemRegistry:      prometheus.NewRegistry(),
		ApplicationRegistry: prometheus.NewRegistry(),
		ConstLabels:         constLabels(cfg),
		metricsPath:         cfg.MetricsPath,
	}
	if m.metricsPath == "" {
		m.metricsPath = DefaultMetricsPath
	}
	if !strings.HasPrefix(m.metricsPath, "/") {
		m.metricsPath = "/" + m.metricsPath
	}

	prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, m.SystemRegistry).MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m.wrappedApplicationRegisterer = prometheus.WrapRegistererWith(m.ConstLabels, m.ApplicationRegistry)

	if addr := resolveAddress(cfg.SystemMetricsAddress, DefaultSystemMetricsAddress); addr != "" {
		m.SystemServer = &http.Server{
			Addr:    addr,
			Handler: m.routes(promhttp.HandlerFor(m.SystemRegistry, promhttp.HandlerOpts{})),
		}
	}

	if addr := resolveAddress(cfg.ApplicationMetricsAddress, DefaultApplicationMetricsAddress); addr != "" {
		m.ApplicationServer = &http.Server{
			Addr:    addr,
			Handler: m.routes(promhttp.HandlerFor(m.ApplicationRegistry, promhttp.HandlerOpts{})),
		}
	}

	return m
}

// MetricsPath returns the route the servers answer on.
func (m *Metrics) MetricsPath() string {
	return m.metricsPath
}

// ScrapeHandler returns a handler exposing both registries in one response, for
// mounting on the host application's own router.
func (m *Metrics) ScrapeHandler() http.Handler {
	return promhttp.HandlerFor(
		prometheus.Gatherers{m.SystemRegistry, m.ApplicationRegistry},
		promhttp.HandlerOpts{},
	)
}

func (m *Metrics) routes(h http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(m.metricsPath, h)
	return mux
}

func resolveAddress(addr *string, def string) string {
	if addr == nil {
		return def
	}
	return *addr
}

func constLabels(cfg Config) prometheus.Labels {
	labels := prometheus.Labels{"service": cfg.ServiceName}

	if !cfg.DisableProcessLabels {
		env := cfg.Environment
		if env == "" {
			env = DefaultEnvironment
		}
		version := cfg.Version
		if version == "" {
			version = proc.Version()
		}

		labels["environment"] = env
		labels["program"] = proc.ProgramName()
		labels["version"] = version
		labels["hostname"] = proc.Hostname()
		labels["ip"] = proc.HostIP()
	}

	for k, v := range cfg.DefaultLabels {
		labels[k] = v
	}
	return labels
}
