package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Counter is a cumulative metric. The value returned by CreateCounter is the whole
// vector; WithLabelValues and With select one series of it.
type Counter interface {
	// WithLabelValues selects the series for the given label values, in the order
	// the labels were declared.
	WithLabelValues(lvs ...string) Counter

	// With selects the series for the given label map.
	With(labels map[string]string) Counter

	Inc()

	// Add increments by val, which must not be negative.
	Add(val float64)

	// Reset drops every series of the vector. It does nothing on a selected series.
	Reset()
}

// Gauge is a metric that can go up and down.
type Gauge interface {
	WithLabelValues(lvs ...string) Gauge
	With(labels map[string]string) Gauge
	Set(val float64)
	Inc()
	Dec()
	Add(val float64)
	Sub(val float64)
	SetToCurrentTime()
	Reset()
}

// Histogram samples observations into buckets.
type Histogram interface {
	WithLabelValues(lvs ...string) Observer
	With(labels map[string]string) Observer
	Observe(val float64)
	Reset()
}

// Summary computes streaming quantiles of observations on the client side.
type Summary interface {
	WithLabelValues(lvs ...string) Observer
	With(labels map[string]string) Observer
	Observe(val float64)
	Reset()
}

// Observer is one series of a Histogram or Summary.
type Observer interface {
	Observe(val float64)
}

type counterVec struct {
	vec *prometheus.CounterVec
}

func (c *counterVec) WithLabelValues(lvs ...string) Counter {
	return counter{c.vec.WithLabelValues(lvs...)}
}

func (c *counterVec) With(labels map[string]string) Counter {
	return counter{c.vec.With(labels)}
}

func (c *counterVec) Inc()            { c.vec.WithLabelValues().Inc() }
func (c *counterVec) Add(val float64) { c.vec.WithLabelValues().Add(val) }
func (c *counterVec) Reset()          { c.vec.Reset() }

type counter struct {
	prometheus.Counter
}

func (c counter) WithLabelValues(...string) Counter { return c }
func (c counter) With(map[string]string) Counter    { return c }
func (c counter) Reset()                            {}

type gaugeVec struct {
	vec *prometheus.GaugeVec
}

func (g *gaugeVec) WithLabelValues(lvs ...string) Gauge {
	return gauge{g.vec.WithLabelValues(lvs...)}
}

func (g *gaugeVec) With(labels map[string]string) Gauge {
	return gauge{g.vec.With(labels)}
}

func (g *gaugeVec) Set(val float64)   { g.vec.WithLabelValues().Set(val) }
func (g *gaugeVec) Inc()              { g.vec.WithLabelValues().Inc() }
func (g *gaugeVec) Dec()              { g.vec.WithLabelValues().Dec() }
func (g *gaugeVec) Add(val float64)   { g.vec.WithLabelValues().Add(val) }
func (g *gaugeVec) Sub(val float64)   { g.vec.WithLabelValues().Sub(val) }
func (g *gaugeVec) SetToCurrentTime() { g.vec.WithLabelValues().SetToCurrentTime() }
func (g *gaugeVec) Reset()            { g.vec.Reset() }

type gauge struct {
	prometheus.Gauge
}

func (g gauge) WithLabelValues(...string) Gauge { return g }
func (g gauge) With(map[string]string) Gauge    { return g }
func (g gauge) Reset()                          {}

type histogramVec struct {
	vec *prometheus.HistogramVec
}

func (h *histogramVec) WithLabelValues(lvs ...string) Observer {
	return h.vec.WithLabelValues(lvs...)
}

func (h *histogramVec) With(labels map[string]string) Observer {
	return h.vec.With(labels)
}

func (h *histogramVec) Observe(val float64) { h.vec.WithLabelValues().Observe(val) }
func (h *histogramVec) Reset()              { h.vec.Reset() }

type summaryVec struct {
	vec *prometheus.SummaryVec
}

func (s *summaryVec) WithLabelValues(lvs ...string) Observer {
	return s.vec.WithLabelValues(lvs...)
}

func (s *summaryVec) With(labels map[string]string) Observer {
	return s.vec.With(labels)
}

func (s *summaryVec) Observe(val float64) { s.vec.WithLabelValues().Observe(val) }
func (s *summaryVec) Reset()              { s.vec.Reset() }
