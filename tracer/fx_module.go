package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/aalemi-dev/redmetrics/logger"
)

// FXModule provides *TracerClient and Tracer from a Config and shuts the provider
// down, flushing pending spans, when the application stops.
var FXModule = fx.Module("tracer",
	fx.Provide(
		func(cfg Config) (*TracerClient, error) { return NewClient(cfg) },
		fx.Annotate(
			func(t *TracerClient) Tracer { return t },
			fx.As(new(Tracer)),
		),
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// LifecycleParams groups the dependencies of RegisterTracerLifecycle.
type LifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Tracer    *TracerClient
	Logger    logger.Logger `optional:"true"`
}

// RegisterTracerLifecycle shuts the tracer down on stop.
func RegisterTracerLifecycle(p LifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if p.Logger != nil {
				p.Logger.Info("Shutting down tracer", nil)
			}
			return p.Tracer.Shutdown(ctx)
		},
	})
}
