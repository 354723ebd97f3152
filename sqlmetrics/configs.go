package sqlmetrics

import (
	"context"
	"time"
)

const (
	DefaultQueryLabelLength = 20
	DefaultStatsInterval    = time.Minute

	subsystem = "sql"
)

// Config defines how statements are labelled and how the database is reached.
type Config struct {
	// Driver is "postgres" or "mysql". Aliases "pgx" and "mariadb" are accepted.
	//
	// Environment variable: SQLMETRICS_DRIVER
	Driver string `yaml:"driver" envconfig:"SQLMETRICS_DRIVER"`

	// DSN is the data source name in the driver's own format. It provides the
	// dbname and dbhost labels and is used by Open to connect.
	//
	// Environment variable: SQLMETRICS_DSN
	DSN string `yaml:"dsn" json:"-" envconfig:"SQLMETRICS_DSN"` //nolint:gosec

	// Namespace prefixes the metric names.
	//
	// Environment variable: SQLMETRICS_NAMESPACE
	Namespace string `yaml:"namespace" envconfig:"SQLMETRICS_NAMESPACE"`

	// QueryLabelLength is the number of characters of the statement kept in the
	// "per" label. Defaults to 20.
	//
	// Environment variable: SQLMETRICS_QUERY_LABEL_LENGTH
	QueryLabelLength int `yaml:"query_label_length" envconfig:"SQLMETRICS_QUERY_LABEL_LENGTH"`

	// DurationBuckets are the histogram buckets in milliseconds. Defaults to
	// metrics.LatencyBuckets.
	//
	// Environment variable: SQLMETRICS_DURATION_BUCKETS (comma separated)
	DurationBuckets []float64 `yaml:"duration_buckets" envconfig:"SQLMETRICS_DURATION_BUCKETS"`

	// StatsInterval is how often StatsEmitter samples the pool. Defaults to a minute.
	//
	// Environment variable: SQLMETRICS_STATS_INTERVAL
	StatsInterval time.Duration `yaml:"stats_interval" envconfig:"SQLMETRICS_STATS_INTERVAL"`

	// SlowQueryThreshold logs statements taking at least this long as warnings.
	// Zero disables the warning.
	//
	// Environment variable: SQLMETRICS_SLOW_QUERY_THRESHOLD
	SlowQueryThreshold time.Duration `yaml:"slow_query_threshold" envconfig:"SQLMETRICS_SLOW_QUERY_THRESHOLD"`

	// EnableTracing records a span per statement when a tracer is supplied.
	//
	// Environment variable: SQLMETRICS_ENABLE_TRACING
	EnableTracing bool `yaml:"enable_tracing" envconfig:"SQLMETRICS_ENABLE_TRACING"`

	// ConnectionDetails configures the pool of connections opened by Open. Its
	// environment variables share the SQLMETRICS_ prefix.
	ConnectionDetails ConnectionDetails `yaml:"connection_details" envconfig:"SQLMETRICS"`
}

// ConnectionDetails holds configuration settings for the database connection pool.
type ConnectionDetails struct {
	// MaxOpenConns controls the maximum number of open connections to the database.
	// If set to 0, the package default of 50 is used.
	//
	// Environment variable: SQLMETRICS_MAX_OPEN_CONNS
	MaxOpenConns int `yaml:"max_open_conns" envconfig:"MAX_OPEN_CONNS"`

	// MaxIdleConns controls the maximum number of connections in the idle pool.
	// If set to 0, the package default of 25 is used.
	//
	// Environment variable: SQLMETRICS_MAX_IDLE_CONNS
	MaxIdleConns int `yaml:"max_idle_conns" envconfig:"MAX_IDLE_CONNS"`

	// ConnMaxLifetime is the maximum amount of time a connection may be reused.
	// If set to 0, the package default of one minute is used.
	//
	// Environment variable: SQLMETRICS_CONN_MAX_LIFETIME
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"CONN_MAX_LIFETIME"`
}

// Logger is the subset of logger.Logger this package writes to.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
