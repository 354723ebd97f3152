package sqlmetrics

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aalemi-dev/redmetrics/metrics"
)

// StatsSource is implemented by *sql.DB.
type StatsSource interface {
	Stats() sql.DBStats
}

// StatsEmitter publishes connection pool statistics. Gauges mirror the latest
// sample; the wait counters advance by the difference to the previous sample.
type StatsEmitter struct {
	interval time.Duration
	labels   []string

	maxOpen      metrics.Gauge
	inUse        metrics.Gauge
	idle         metrics.Gauge
	waitCount    metrics.Counter
	waitDuration metrics.Counter

	mu   sync.Mutex
	last sql.DBStats
}

// NewStatsEmitter creates the pool metrics on collector, labelled with the dbname
// and dbhost of cfg.DSN.
func NewStatsEmitter(cfg Config, collector metrics.MetricsCollector) (*StatsEmitter, error) {
	if collector == nil {
		return nil, fmt.Errorf("%w: nil metrics collector", ErrInvalidConfig)
	}
	applyDefaults(&cfg)

	var info ConnInfo
	if cfg.DSN != "" {
		var err error
		if info, err = ParseDSN(cfg.Driver, cfg.DSN); err != nil {
			return nil, err
		}
	}

	e := &StatsEmitter{
		interval: cfg.StatsInterval,
		labels:   []string{info.DBName, info.DBHost},
	}

	labelNames := []string{"dbname", "dbhost"}
	name := func(n string) string { return prometheus.BuildFQName(cfg.Namespace, subsystem, n) }

	err := register(func() {
		e.maxOpen = collector.CreateGauge(name("connections_max_open"),
			"Maximum number of open connections to the database.", labelNames)
		e.inUse = collector.CreateGauge(name("connections_in_use"),
			"The number of connections currently in use.", labelNames)
		e.idle = collector.CreateGauge(name("connections_idle"),
			"The number of idle connections.", labelNames)
		e.waitCount = collector.CreateCounter(name("connections_wait_total"),
			"The total number of connections waited for.", labelNames)
		e.waitDuration = collector.CreateCounter(name("connections_wait_duration_total"),
			"The total time blocked waiting for a new connection, in seconds.", labelNames)
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Interval returns the sampling period used by Run.
func (e *StatsEmitter) Interval() time.Duration {
	return e.interval
}

// Emit publishes one sample. A wait counter lower than in the previous sample
// means the pool was replaced, and the new value is added in full.
func (e *StatsEmitter) Emit(s sql.DBStats) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.maxOpen.WithLabelValues(e.labels...).Set(float64(s.MaxOpenConnections))
	e.inUse.WithLabelValues(e.labels...).Set(float64(s.InUse))
	e.idle.WithLabelValues(e.labels...).Set(float64(s.Idle))

	waits := s.WaitCount
	if waits >= e.last.WaitCount {
		waits -= e.last.WaitCount
	}
	waited := s.WaitDuration
	if waited >= e.last.WaitDuration {
		waited -= e.last.WaitDuration
	}

	e.waitCount.WithLabelValues(e.labels...).Add(float64(waits))
	e.waitDuration.WithLabelValues(e.labels...).Add(waited.Seconds())
	e.last = s
}

// Run samples db immediately and then every Interval until ctx is done.
func (e *StatsEmitter) Run(ctx context.Context, db StatsSource) {
	e.Emit(db.Stats())

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.Emit(db.Stats())
		}
	}
}
