package sqlmetrics

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/aalemi-dev/redmetrics/logger"
	"github.com/aalemi-dev/redmetrics/metrics"
	"github.com/aalemi-dev/redmetrics/observability"
	"github.com/aalemi-dev/redmetrics/tracer"
)

// FXModule provides *Plugin and *StatsEmitter from the Config and
// metrics.MetricsCollector in the container. Applications with their own *gorm.DB
// install the plugin themselves; DatabaseFXModule opens one instead.
var FXModule = fx.Module("sqlmetrics",
	fx.Provide(
		NewPluginFromParams,
		NewStatsEmitter,
	),
)

// DatabaseFXModule provides an instrumented *gorm.DB opened with Open, samples its
// pool with the StatsEmitter while the application runs and closes it on stop.
// It requires FXModule.
var DatabaseFXModule = fx.Module("sqlmetrics-database",
	fx.Provide(Open),
	fx.Invoke(RegisterDatabaseLifecycle),
)

// PluginParams groups the dependencies of NewPluginFromParams.
type PluginParams struct {
	fx.In

	Config    Config
	Collector metrics.MetricsCollector
	Logger    logger.Logger          `optional:"true"`
	Observer  observability.Observer `optional:"true"`
	Tracer    tracer.Tracer          `optional:"true"`
}

// NewPluginFromParams is the fx constructor of *Plugin.
func NewPluginFromParams(p PluginParams) (*Plugin, error) {
	var opts []Option
	if p.Logger != nil {
		opts = append(opts, WithLogger(p.Logger))
	}
	if p.Observer != nil {
		opts = append(opts, WithObserver(p.Observer))
	}
	if p.Tracer != nil {
		opts = append(opts, WithTracer(p.Tracer))
	}
	return NewPlugin(p.Config, p.Collector, opts...)
}

// DatabaseLifecycleParams groups the dependencies of RegisterDatabaseLifecycle.
type DatabaseLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	DB        *gorm.DB
	Stats     *StatsEmitter
	Plugin    *Plugin
	Logger    logger.Logger `optional:"true"`
}

// RegisterDatabaseLifecycle starts pool sampling on start. On stop it waits for
// the sampler to exit and closes the connection pool.
func RegisterDatabaseLifecycle(p DatabaseLifecycleParams) {
	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}

	var (
		wg     sync.WaitGroup
		cancel context.CancelFunc = func() {}
	)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			sqlDB, err := p.DB.DB()
			if err != nil {
				return fmt.Errorf("failed to get database instance: %w", err)
			}

			info := p.Plugin.ConnInfo()
			log.InfoWithContext(ctx, "Connected to database", nil, map[string]interface{}{
				"dbname":         info.DBName,
				"dbhost":         info.DBHost,
				"stats_interval": p.Stats.Interval().String(),
			})

			var runCtx context.Context
			runCtx, cancel = context.WithCancel(context.Background())
			wg.Add(1)
			go func() {
				defer wg.Done()
				p.Stats.Run(runCtx, sqlDB)
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			cancel()
			wg.Wait()

			sqlDB, err := p.DB.DB()
			if err != nil {
				return nil
			}
			if err := sqlDB.Close(); err != nil {
				log.ErrorWithContext(ctx, "Error closing database", err)
				return err
			}
			return nil
		},
	})
}
