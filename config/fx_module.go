package config

import (
	"go.uber.org/fx"

	"github.com/aalemi-dev/redmetrics/httpmetrics"
	"github.com/aalemi-dev/redmetrics/logger"
	"github.com/aalemi-dev/redmetrics/metrics"
	"github.com/aalemi-dev/redmetrics/sqlmetrics"
	"github.com/aalemi-dev/redmetrics/tracer"
)

// FXModule provides the loaded *Config and each of its sections, so the other
// packages' modules find their Config in the graph.
func FXModule(path string, envFiles ...string) fx.Option {
	return fx.Module("config",
		fx.Provide(
			func() (*Config, error) { return Load(path, envFiles...) },
			Split,
		),
	)
}

// Sections is the fx view of a Config, one value per package.
type Sections struct {
	fx.Out

	Server      ServerConfig
	Logger      logger.Config
	Metrics     metrics.Config
	HTTPMetrics httpmetrics.Config
	Tracer      tracer.Config
	SQLMetrics  sqlmetrics.Config
}

// Split hands every section of cfg to fx as its own value.
func Split(cfg *Config) Sections {
	return Sections{
		Server:      cfg.Server,
		Logger:      cfg.Logger,
		Metrics:     cfg.Metrics,
		HTTPMetrics: cfg.HTTPMetrics,
		Tracer:      cfg.Tracer,
		SQLMetrics:  cfg.SQLMetrics,
	}
}
