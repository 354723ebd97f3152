package sqlmetrics

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"

	"github.com/aalemi-dev/redmetrics/metrics"
	"github.com/aalemi-dev/redmetrics/observability"
	"github.com/aalemi-dev/redmetrics/tracer"
)

const (
	pluginName = "redmetrics:sqlmetrics"

	startKey = "redmetrics:sqlmetrics:start"
	spanKey  = "redmetrics:sqlmetrics:span"
)

// Plugin is a gorm.Plugin timing create, query, update, delete, row and raw
// statements.
type Plugin struct {
	cfg      Config
	info     ConnInfo
	system   string
	duration metrics.Histogram

	logger   Logger
	observer observability.Observer
	tracer   tracer.Tracer
	now      func() time.Time
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger sets the logger used for slow query warnings.
func WithLogger(l Logger) Option {
	return func(p *Plugin) { p.logger = l }
}

// WithObserver sets an observer notified after every statement.
func WithObserver(o observability.Observer) Option {
	return func(p *Plugin) { p.observer = o }
}

// WithTracer sets the tracer used when Config.EnableTracing is set.
func WithTracer(t tracer.Tracer) Option {
	return func(p *Plugin) { p.tracer = t }
}

func withClock(now func() time.Time) Option {
	return func(p *Plugin) { p.now = now }
}

// NewPlugin creates the query duration histogram on collector. The DSN, when
// configured, must parse for the configured driver.
func NewPlugin(cfg Config, collector metrics.MetricsCollector, opts ...Option) (*Plugin, error) {
	if collector == nil {
		return nil, fmt.Errorf("%w: nil metrics collector", ErrInvalidConfig)
	}
	applyDefaults(&cfg)

	p := &Plugin{cfg: cfg, now: time.Now}
	if cfg.Driver != "" {
		system, err := Driver(cfg.Driver)
		if err != nil {
			return nil, err
		}
		p.system = system
	}
	if cfg.DSN != "" {
		info, err := ParseDSN(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, err
		}
		p.info = info
	}

	for _, opt := range opts {
		opt(p)
	}

	err := register(func() {
		p.duration = collector.CreateHistogram(
			prometheus.BuildFQName(cfg.Namespace, subsystem, "query_duration_milliseconds"),
			"SQL duration per query",
			[]string{"per", "statement", "table", "dbname", "dbhost", "status"},
			cfg.DurationBuckets,
		)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func applyDefaults(cfg *Config) {
	if cfg.QueryLabelLength == 0 {
		cfg.QueryLabelLength = DefaultQueryLabelLength
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = metrics.LatencyBuckets
	}
	if cfg.StatsInterval <= 0 {
		cfg.StatsInterval = DefaultStatsInterval
	}
}

// register turns the panic of a duplicate registration into ErrInvalidConfig.
func register(create func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: registering sql metrics: %v", ErrInvalidConfig, r)
		}
	}()
	create()
	return nil
}

// ConnInfo returns the database the plugin labels its metrics with.
func (p *Plugin) ConnInfo() ConnInfo {
	return p.info
}

// Name identifies the plugin to gorm; installing it twice on one DB fails.
func (p *Plugin) Name() string {
	return pluginName
}

// Initialize registers the timing callbacks around gorm's own.
func (p *Plugin) Initialize(db *gorm.DB) error {
	if p.system == "" && db.Dialector != nil {
		p.system = db.Dialector.Name()
	}

	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register(pluginName+":before_create", p.before),
		cb.Create().After("gorm:create").Register(pluginName+":after_create", p.after("insert")),
		cb.Query().Before("gorm:query").Register(pluginName+":before_query", p.before),
		cb.Query().After("gorm:query").Register(pluginName+":after_query", p.after("select")),
		cb.Update().Before("gorm:update").Register(pluginName+":before_update", p.before),
		cb.Update().After("gorm:update").Register(pluginName+":after_update", p.after("update")),
		cb.Delete().Before("gorm:delete").Register(pluginName+":before_delete", p.before),
		cb.Delete().After("gorm:delete").Register(pluginName+":after_delete", p.after("delete")),
		cb.Row().Before("gorm:row").Register(pluginName+":before_row", p.before),
		cb.Row().After("gorm:row").Register(pluginName+":after_row", p.after("row")),
		cb.Raw().Before("gorm:raw").Register(pluginName+":before_raw", p.before),
		cb.Raw().After("gorm:raw").Register(pluginName+":after_raw", p.after("raw")),
	)
}

func (p *Plugin) tracingEnabled() bool {
	return p.cfg.EnableTracing && p.tracer != nil
}

func (p *Plugin) before(db *gorm.DB) {
	db.InstanceSet(startKey, p.now())

	if p.tracingEnabled() {
		ctx, span := p.tracer.StartSpan(statementContext(db), "sql")
		db.Statement.Context = ctx
		db.InstanceSet(spanKey, span)
	}
}

func (p *Plugin) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		elapsed := p.now().Sub(start)
		ctx := statementContext(db)

		query := db.Statement.SQL.String()
		statement := StatementOf(query, operation)
		table := db.Statement.Table

		err := db.Error
		status := statusSuccess
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			status = statusFailure
		} else {
			err = nil
		}

		p.duration.WithLabelValues(
			QueryLabel(query, p.cfg.QueryLabelLength),
			statement,
			table,
			p.info.DBName,
			p.info.DBHost,
			status,
		).Observe(float64(elapsed) / float64(time.Millisecond))

		if s, ok := db.InstanceGet(spanKey); ok {
			if span, ok := s.(tracer.Span); ok {
				name := statement
				if table != "" {
					name += " " + table
				}
				span.SetName(name)
				span.SetAttributes(map[string]interface{}{
					"db.system":    p.system,
					"db.name":      p.info.DBName,
					"db.statement": CollapseQuery(query),
					"db.sql.table": table,
				})
				span.RecordError(err)
				span.End()
			}
		}

		if p.logger != nil && p.cfg.SlowQueryThreshold > 0 && elapsed >= p.cfg.SlowQueryThreshold {
			p.logger.WarnWithContext(ctx, "Slow SQL query", nil, map[string]interface{}{
				"query":        CollapseQuery(query),
				"table":        table,
				"dbname":       p.info.DBName,
				"duration_ms":  float64(elapsed) / float64(time.Millisecond),
				"threshold_ms": float64(p.cfg.SlowQueryThreshold) / float64(time.Millisecond),
			})
		}

		if p.observer != nil {
			metadata := map[string]interface{}{
				"query":  CollapseQuery(query),
				"dbhost": p.info.DBHost,
			}
			if code := errorCode(err); code != "" {
				metadata["error_code"] = code
			}
			p.observer.ObserveOperation(observability.OperationContext{
				Context:     ctx,
				Component:   "sql",
				Operation:   statement,
				Resource:    table,
				SubResource: p.info.DBName,
				Duration:    elapsed,
				Error:       err,
				Size:        db.RowsAffected,
				Metadata:    metadata,
			})
		}
	}
}

func statementContext(db *gorm.DB) context.Context {
	if db.Statement != nil && db.Statement.Context != nil {
		return db.Statement.Context
	}
	return context.Background()
}

// errorCode returns the SQLSTATE of a postgres error or the error number of a
// mysql one.
func errorCode(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return strconv.Itoa(int(myErr.Number))
	}
	return ""
}
