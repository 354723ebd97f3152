// Package sqlmetrics records the duration of every SQL statement issued through
// gorm, together with the health of the connection pool.
//
// # Query metrics
//
// Query durations go to a histogram named sql_query_duration_milliseconds (prefixed
// by Config.Namespace when set) with these labels:
//
//	per        the whitespace-collapsed statement, truncated to QueryLabelLength
//	statement  the leading SQL keyword ("select", "insert", ...)
//	table      the gorm statement table, empty for raw SQL
//	dbname     database name parsed from the DSN
//	dbhost     host:port parsed from the DSN
//	status     "success" or "failure"; gorm.ErrRecordNotFound counts as success
//
// Statements are timed from gorm's own callbacks for create, query, update, delete,
// row and raw, so everything a *gorm.DB issues is covered, including Raw and Exec.
// When the statement text starts with no recognisable keyword the gorm operation is
// used instead ("insert" for Create, "select" for Find and First, and so on).
//
// The per label keeps the start of the statement so that dashboards can tell apart
// queries against the same table. Raise QueryLabelLength with care: every distinct
// prefix is a series.
//
// # Installing the plugin
//
// The plugin is installed like any other gorm plugin:
//
//	plugin, err := sqlmetrics.NewPlugin(sqlmetrics.Config{
//		Driver: "postgres",
//		DSN:    dsn,
//	}, collector, sqlmetrics.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	if err := db.Use(plugin); err != nil {
//		return err
//	}
//
// or through Open, which picks the gorm dialector for Config.Driver, applies the
// connection pool settings of Config.ConnectionDetails and installs the plugin:
//
//	db, err := sqlmetrics.Open(cfg, plugin)
//
// Supported drivers are postgres (aliases postgresql, pgx) and mysql (alias
// mariadb). A driver name may carry a suffix after a colon, such as
// "postgres:replica".
//
// # Slow queries, tracing and observers
//
// With Config.SlowQueryThreshold and a logger, statements at or above the threshold
// are logged as "Slow SQL query" warnings with the statement, table, database and
// duration. With Config.EnableTracing and a tracer, every statement gets a span. An
// observability.Observer sees every statement with its driver error code.
//
// # Connection pool
//
// StatsEmitter publishes sql.DBStats periodically as gauges (max open, in use,
// idle) and counters (waits, seconds spent waiting):
//
//	stats, err := sqlmetrics.NewStatsEmitter(cfg, collector)
//	if err != nil {
//		return err
//	}
//	sqlDB, _ := db.DB()
//	go stats.Run(ctx, sqlDB)
//
// Run emits once immediately and then every Config.StatsInterval until ctx is done.
//
// # Configuration
//
//	SQLMETRICS_DRIVER=postgres
//	SQLMETRICS_DSN=postgres://app:secret@db:5432/shop
//	SQLMETRICS_NAMESPACE=shop
//	SQLMETRICS_QUERY_LABEL_LENGTH=20
//	SQLMETRICS_STATS_INTERVAL=30s
//	SQLMETRICS_SLOW_QUERY_THRESHOLD=200ms
//	SQLMETRICS_ENABLE_TRACING=true
//	SQLMETRICS_MAX_OPEN_CONNS=50
//	SQLMETRICS_MAX_IDLE_CONNS=25
//	SQLMETRICS_CONN_MAX_LIFETIME=1m
//
// # Fx
//
// FXModule provides *Plugin and *StatsEmitter. DatabaseFXModule adds a *gorm.DB
// opened with Open, runs the StatsEmitter for the lifetime of the application and
// closes the pool on stop:
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		sqlmetrics.FXModule,
//		sqlmetrics.DatabaseFXModule,
//		fx.Provide(loadConfigs),
//		fx.Invoke(func(db *gorm.DB) { ... }),
//	)
package sqlmetrics
