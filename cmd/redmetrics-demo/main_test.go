package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalemi-dev/redmetrics/config"
	"github.com/aalemi-dev/redmetrics/httpmetrics"
	"github.com/aalemi-dev/redmetrics/metrics"
)

func TestRouterRecordsRoutePatterns(t *testing.T) {
	m := metrics.NewMetrics(metrics.Config{
		ServiceName:               "demo",
		SystemMetricsAddress:      metrics.Ptr(""),
		ApplicationMetricsAddress: metrics.Ptr(""),
		DisableProcessLabels:      true,
	})
	rec, err := httpmetrics.NewRecorder(httpmetrics.Config{}, m)
	require.NoError(t, err)

	h := newRouter(routerParams{Recorder: rec, Metrics: m})

	for _, target := range []string{"/users/7", "/users/8", "/orders/1", "/healthz", "/metrics"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	}

	families, err := m.ApplicationRegistry.Gather()
	require.NoError(t, err)

	got := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != httpmetrics.DefaultRequestsCounterName {
			continue
		}
		for _, metric := range mf.GetMetric() {
			l := labelsOf(metric)
			got[l["path"]+" "+l["status"]] = metric.GetCounter().GetValue()
		}
	}

	assert.Equal(t, map[string]float64{
		"/users/{id} 200":  2,
		"/orders/{id} 503": 1,
		"/healthz 204":     1,
	}, got)
}

func TestOptionsIncludeDatabaseOnlyWithDSN(t *testing.T) {
	cfg := config.Default()
	without := len(options(cfg))

	cfg.SQLMetrics.DSN = "postgres://app@localhost/shop"
	assert.Equal(t, without+2, len(options(cfg)))
}

func labelsOf(m *dto.Metric) map[string]string {
	out := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		out[lp.GetName()] = lp.GetValue()
	}
	return out
}
