package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalemi-dev/redmetrics/metrics"
	"github.com/aalemi-dev/redmetrics/proc"
)

func labelsOf(m *dto.Metric) map[string]string {
	out := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		out[lp.GetName()] = lp.GetValue()
	}
	return out
}

func gatherOne(t *testing.T, m *metrics.Metrics, name string) *dto.Metric {
	t.Helper()
	families, err := m.ApplicationRegistry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			require.NotEmpty(t, mf.GetMetric())
			return mf.GetMetric()[0]
		}
	}
	t.Fatalf("metric %q not gathered", name)
	return nil
}

// TestMetricsDualEndpoint verifies that both registries and servers are set up.
func TestMetricsDualEndpoint(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{
		SystemMetricsAddress:      metrics.Ptr(":0"),
		ApplicationMetricsAddress: metrics.Ptr(":0"),
		ServiceName:               "test-service",
	})

	require.NotNil(t, m.SystemRegistry)
	require.NotNil(t, m.SystemServer)
	require.NotNil(t, m.ApplicationRegistry)
	require.NotNil(t, m.ApplicationServer)
	assert.Equal(t, metrics.DefaultMetricsPath, m.MetricsPath())

	n, err := testutil.GatherAndCount(m.SystemRegistry, "go_goroutines")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMetricsDisabledEndpoints(t *testing.T) {
	tests := []struct {
		name                    string
		systemAddress           *string
		applicationAddress      *string
		expectSystemServer      bool
		expectApplicationServer bool
	}{
		{"Both enabled with defaults", nil, nil, true, true},
		{"Both enabled with explicit ports", metrics.Ptr(":0"), metrics.Ptr(":0"), true, true},
		{"Only system enabled", metrics.Ptr(":0"), metrics.Ptr(""), true, false},
		{"Only application enabled", metrics.Ptr(""), metrics.Ptr(":0"), false, true},
		{"Both disabled", metrics.Ptr(""), metrics.Ptr(""), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.NewMetrics(metrics.Config{
				SystemMetricsAddress:      tt.systemAddress,
				ApplicationMetricsAddress: tt.applicationAddress,
				ServiceName:               "test-service",
			})

			assert.Equal(t, tt.expectSystemServer, m.SystemServer != nil)
			assert.Equal(t, tt.expectApplicationServer, m.ApplicationServer != nil)

			// registries survive a disabled server so ScrapeHandler keeps working
			assert.NotNil(t, m.SystemRegistry)
			assert.NotNil(t, m.ApplicationRegistry)
		})
	}
}

func TestMetrics_ConstLabels(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{
		SystemMetricsAddress:      metrics.Ptr(""),
		ApplicationMetricsAddress: metrics.Ptr(""),
		ServiceName:               "orders",
		Version:                   "1.4.2",
	})

	m.CreateCounter("labelled_total", "help", nil).Inc()

	got := labelsOf(gatherOne(t, m, "labelled_total"))
	assert.Equal(t, "orders", got["service"])
	assert.Equal(t, metrics.DefaultEnvironment, got["environment"])
	assert.Equal(t, "1.4.2", got["version"])
	assert.Equal(t, proc.ProgramName(), got["program"])
	assert.Equal(t, proc.Hostname(), got["hostname"])
	assert.Equal(t, proc.HostIP(), got["ip"])
}

func TestMetrics_DefaultLabelsOverrideBuiltins(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{
		SystemMetricsAddress:      metrics.Ptr(""),
		ApplicationMetricsAddress: metrics.Ptr(""),
		ServiceName:               "orders",
		Environment:               "staging",
		DefaultLabels:             map[string]string{"environment": "canary", "region": "eu-1"},
	})

	m.CreateGauge("labelled_gauge", "help", nil).Set(1)

	got := labelsOf(gatherOne(t, m, "labelled_gauge"))
	assert.Equal(t, "canary", got["environment"])
	assert.Equal(t, "eu-1", got["region"])
}

func TestMetrics_DisableProcessLabels(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{
		SystemMetricsAddress:      metrics.Ptr(""),
		ApplicationMetricsAddress: metrics.Ptr(""),
		ServiceName:               "orders",
		DisableProcessLabels:      true,
	})

	m.CreateCounter("bare_total", "help", nil).Inc()

	assert.Equal(t, map[string]string{"service": "orders"}, labelsOf(gatherOne(t, m, "bare_total")))
}

func TestMetrics_ScrapeHandlerExposesBothRegistries(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{
		SystemMetricsAddress:      metrics.Ptr(""),
		ApplicationMetricsAddress: metrics.Ptr(""),
		ServiceName:               "scrape",
	})
	m.CreateCounter("scrape_requests_total", "help", []string{"path"}).WithLabelValues("/users/{id}").Add(3)

	rec := httptest.NewRecorder()
	m.ScrapeHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `scrape_requests_total{`)
	assert.Contains(t, body, `path="/users/{id}"`)
	assert.Contains(t, body, "go_goroutines")
}

func TestMetrics_ServerAnswersOnlyOnMetricsPath(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{
		SystemMetricsAddress:      metrics.Ptr(""),
		ApplicationMetricsAddress: metrics.Ptr(":0"),
		MetricsPath:               "telemetry",
		ServiceName:               "paths",
	})
	m.CreateCounter("paths_total", "help", nil).Inc()

	assert.Equal(t, "/telemetry", m.MetricsPath())

	srv := httptest.NewServer(m.ApplicationServer.Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/telemetry")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "paths_total")

	resp, err = http.Get(srv.URL + "/other")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestMetricsServerLifecycle verifies that both servers can be started and closed.
func TestMetricsServerLifecycle(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{
		SystemMetricsAddress:      metrics.Ptr("127.0.0.1:0"),
		ApplicationMetricsAddress: metrics.Ptr("127.0.0.1:0"),
		ServiceName:               "test-service",
	})

	for _, srv := range []*http.Server{m.SystemServer, m.ApplicationServer} {
		go func(s *http.Server) {
			if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				t.Errorf("ListenAndServe() error: %v", err)
			}
		}(srv)
	}

	time.Sleep(100 * time.Millisecond)

	assert.NoError(t, m.SystemServer.Close())
	assert.NoError(t, m.ApplicationServer.Close())
}

func TestMetrics_DuplicateNamePanics(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{
		SystemMetricsAddress:      metrics.Ptr(""),
		ApplicationMetricsAddress: metrics.Ptr(""),
	})
	m.CreateCounter("dup_total", "help", nil)

	assert.Panics(t, func() { m.CreateCounter("dup_total", "help", nil) })
}

func TestLatencyBuckets(t *testing.T) {
	require.Len(t, metrics.LatencyBuckets, 31)
	assert.InDelta(t, 0.25, metrics.LatencyBuckets[0], 1e-9)
	assert.InDelta(t, 0.375, metrics.LatencyBuckets[1], 1e-9)
}
