package httpmetrics

import (
	"fmt"
	"time"

	"github.com/aalemi-dev/redmetrics/logger"
	"github.com/aalemi-dev/redmetrics/metrics"
	"github.com/aalemi-dev/redmetrics/observability"
	"github.com/aalemi-dev/redmetrics/pathnorm"
	"github.com/aalemi-dev/redmetrics/tracer"
)

// Recorder turns finished requests into RED metrics. It is framework neutral:
// Middleware adapts it to net/http, and the ginmetrics and fibermetrics packages
// adapt it to those frameworks.
//
// A Recorder is safe for concurrent use.
type Recorder struct {
	cfg        Config
	normalizer *pathnorm.Normalizer
	excluded   map[string]struct{}
	limiter    *labelLimiter
	labelNames []string

	requests metrics.Counter
	duration metrics.Histogram

	log         logger.Logger
	observer    observability.Observer
	tracer      tracer.Tracer
	pathLabeler PathLabeler
	labelMaker  LabelMaker
	extraIndex  map[string]struct{}
	now         func() time.Time
}

// WithLogger sets the logger used for setup messages.
func WithLogger(l logger.Logger) Option {
	return func(r *Recorder) {
		if l != nil {
			r.log = l
		}
	}
}

// WithObserver sets an observer notified after every recorded request.
func WithObserver(o observability.Observer) Option {
	return func(r *Recorder) { r.observer = o }
}

// WithTracer sets the tracer used when Config.EnableTracing is set.
func WithTracer(t tracer.Tracer) Option {
	return func(r *Recorder) { r.tracer = t }
}

// WithPathLabeler sets a function consulted before route patterns and rules.
func WithPathLabeler(fn PathLabeler) Option {
	return func(r *Recorder) { r.pathLabeler = fn }
}

// WithLabelMaker sets the function supplying values for Config.ExtraLabels.
func WithLabelMaker(fn LabelMaker) Option {
	return func(r *Recorder) { r.labelMaker = fn }
}

// withClock replaces time.Now in tests.
func withClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// NewRecorder validates cfg, compiles its rules and creates the request counter and
// duration histogram on collector.
func NewRecorder(cfg Config, collector metrics.MetricsCollector, opts ...Option) (*Recorder, error) {
	if collector == nil {
		return nil, fmt.Errorf("%w: nil metrics collector", ErrInvalidConfig)
	}
	if cfg.MaxPathLabels < 0 {
		return nil, fmt.Errorf("%w: negative max path labels %d", ErrInvalidConfig, cfg.MaxPathLabels)
	}

	applyDefaults(&cfg)

	extraIndex := make(map[string]struct{}, len(cfg.ExtraLabels))
	for _, name := range cfg.ExtraLabels {
		if name == "" {
			return nil, fmt.Errorf("%w: empty extra label name", ErrInvalidConfig)
		}
		if _, ok := reservedLabels[name]; ok {
			return nil, fmt.Errorf("%w: extra label %q is reserved", ErrInvalidConfig, name)
		}
		if _, ok := extraIndex[name]; ok {
			return nil, fmt.Errorf("%w: duplicate extra label %q", ErrInvalidConfig, name)
		}
		extraIndex[name] = struct{}{}
	}

	for i := 1; i < len(cfg.DurationBuckets); i++ {
		if cfg.DurationBuckets[i] <= cfg.DurationBuckets[i-1] {
			return nil, fmt.Errorf("%w: duration buckets must be strictly increasing", ErrInvalidConfig)
		}
	}

	normalizer, err := pathnorm.New(pathnorm.Config{Rules: cfg.Rules, Replacement: cfg.Replacement})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	r := &Recorder{
		cfg:        cfg,
		normalizer: normalizer,
		excluded:   make(map[string]struct{}, len(cfg.ExcludePaths)+1),
		limiter:    newLabelLimiter(cfg.MaxPathLabels, cfg.OverflowLabel),
		labelNames: []string{"path", "method", "status"},
		extraIndex: extraIndex,
		log:        logger.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.excluded[pathnorm.Sanitize(cfg.MetricsPath)] = struct{}{}
	for _, p := range cfg.ExcludePaths {
		r.excluded[pathnorm.Sanitize(p)] = struct{}{}
	}

	if cfg.IncludeDomain {
		r.labelNames = append(r.labelNames, "domain")
	}
	r.labelNames = append(r.labelNames, cfg.ExtraLabels...)

	if err := r.createMetrics(collector); err != nil {
		return nil, err
	}

	r.log.Info("HTTP request metrics enabled", nil, map[string]interface{}{
		"counter":         cfg.RequestsCounterName,
		"histogram":       cfg.RequestDurationName,
		"rules":           len(cfg.Rules),
		"extra_labels":    cfg.ExtraLabels,
		"max_path_labels": cfg.MaxPathLabels,
		"tracing":         r.TracingEnabled(),
	})

	return r, nil
}

// createMetrics converts the registration panic of a duplicate metric name into an
// error, so that two recorders on one collector fail at setup.
func (r *Recorder) createMetrics(collector metrics.MetricsCollector) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: registering request metrics: %v", ErrInvalidConfig, p)
		}
	}()

	r.requests = collector.CreateCounter(
		r.cfg.RequestsCounterName,
		"Total number of HTTP requests by path label, method and status.",
		r.labelNames,
	)
	r.duration = collector.CreateHistogram(
		r.cfg.RequestDurationName,
		"HTTP request latency in milliseconds by path label, method and status.",
		r.labelNames,
		r.cfg.DurationBuckets,
	)
	return nil
}

var reservedLabels = map[string]struct{}{
	"path":   {},
	"method": {},
	"status": {},
	"domain": {},
}

func applyDefaults(cfg *Config) {
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = DefaultMetricsPath
	}
	if cfg.RequestsCounterName == "" {
		cfg.RequestsCounterName = DefaultRequestsCounterName
	}
	if cfg.RequestDurationName == "" {
		cfg.RequestDurationName = DefaultRequestDurationName
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = metrics.LatencyBuckets
	}
	if cfg.OverflowLabel == "" {
		cfg.OverflowLabel = DefaultOverflowLabel
	}
}

// Config returns the effective configuration, defaults included.
func (r *Recorder) Config() Config {
	return r.cfg
}

// TracingEnabled reports whether requests get a server span, that is whether
// Config.EnableTracing is set and a tracer was supplied.
func (r *Recorder) TracingEnabled() bool {
	return r.cfg.EnableTracing && r.tracer != nil
}
