package httpmetrics

import (
	"go.uber.org/fx"

	"github.com/aalemi-dev/redmetrics/logger"
	"github.com/aalemi-dev/redmetrics/metrics"
	"github.com/aalemi-dev/redmetrics/observability"
	"github.com/aalemi-dev/redmetrics/tracer"
)

// FXModule provides a *Recorder built from the Config and MetricsCollector in the
// container. A logger.Logger, observability.Observer and tracer.Tracer are used
// when present.
var FXModule = fx.Module("httpmetrics",
	fx.Provide(NewRecorderFromParams),
)

// RecorderParams groups the dependencies of NewRecorderFromParams.
type RecorderParams struct {
	fx.In

	Config    Config
	Collector metrics.MetricsCollector
	Logger    logger.Logger          `optional:"true"`
	Observer  observability.Observer `optional:"true"`
	Tracer    tracer.Tracer          `optional:"true"`
	Labels    LabelMaker             `optional:"true"`
}

// NewRecorderFromParams is the fx constructor of *Recorder.
func NewRecorderFromParams(p RecorderParams) (*Recorder, error) {
	opts := []Option{WithLogger(p.Logger)}
	if p.Observer != nil {
		opts = append(opts, WithObserver(p.Observer))
	}
	if p.Tracer != nil {
		opts = append(opts, WithTracer(p.Tracer))
	}
	if p.Labels != nil {
		opts = append(opts, WithLabelMaker(p.Labels))
	}
	return NewRecorder(p.Config, p.Collector, opts...)
}
