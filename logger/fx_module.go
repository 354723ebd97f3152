package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *LoggerClient and Logger from a Config in the container and
// flushes buffered entries on stop.
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
		fx.Annotate(
			func(l *LoggerClient) Logger { return l },
			fx.As(new(Logger)),
		),
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle syncs the logger when the application stops.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *LoggerClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// stderr cannot be synced on most platforms; that is not a shutdown failure.
			_ = client.Sync()
			return nil
		},
	})
}
