package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/fx"

	"github.com/aalemi-dev/redmetrics/logger"
)

// FXModule provides *Metrics and MetricsCollector from a Config in the container
// and runs the enabled scrape servers for the lifetime of the application.
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		fx.Provide(func() metrics.Config { return metrics.Config{ServiceName: "checkout"} }),
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		fx.Annotate(
			func(m *Metrics) MetricsCollector { return m },
			fx.As(new(MetricsCollector)),
		),
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// LifecycleParams groups the dependencies of RegisterMetricsLifecycle.
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Metrics   *Metrics
	Logger    logger.Logger `optional:"true"`
}

// RegisterMetricsLifecycle starts the enabled servers on start and shuts them down
// gracefully on stop.
func RegisterMetricsLifecycle(p LifecycleParams) {
	m := p.Metrics
	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}

	servers := []struct {
		name   string
		server *http.Server
	}{
		{"system", m.SystemServer},
		{"application", m.ApplicationServer},
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for _, s := range servers {
				if s.server == nil {
					continue
				}
				name, srv := s.name, s.server
				go func() {
					log.Info("Starting "+name+" metrics server", nil, map[string]interface{}{
						"address": srv.Addr,
						"path":    m.MetricsPath(),
					})
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						log.Error("Error running "+name+" metrics server", err, map[string]interface{}{
							"address": srv.Addr,
						})
					}
				}()
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			var errs []error
			for _, s := range servers {
				if s.server == nil {
					continue
				}
				log.Info("Shutting down "+s.name+" metrics server", nil)
				if err := s.server.Shutdown(ctx); err != nil {
					log.Error("Error shutting down "+s.name+" metrics server", err)
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	})
}
