package observability

import (
	"context"
	"time"

	"github.com/aalemi-dev/redmetrics/logger"
)

// LogObserver writes failed operations as errors and operations slower than
// SlowThreshold as warnings. Everything else is logged at debug level.
type LogObserver struct {
	log           logger.Logger
	slowThreshold time.Duration
}

// NewLogObserver returns a LogObserver writing to log. A zero slowThreshold
// disables the slow-operation warning.
func NewLogObserver(log logger.Logger, slowThreshold time.Duration) *LogObserver {
	if log == nil {
		log = logger.NewNop()
	}
	return &LogObserver{log: log, slowThreshold: slowThreshold}
}

// ObserveOperation logs oc at error, warn or debug level, see LogObserver.
func (o *LogObserver) ObserveOperation(oc OperationContext) {
	ctx := oc.Context
	if ctx == nil {
		ctx = context.Background()
	}

	fields := map[string]interface{}{
		"component":   oc.Component,
		"operation":   oc.Operation,
		"resource":    oc.Resource,
		"duration_ms": float64(oc.Duration) / float64(time.Millisecond),
	}
	if oc.SubResource != "" {
		fields["sub_resource"] = oc.SubResource
	}
	if oc.Size != 0 {
		fields["size"] = oc.Size
	}

	switch {
	case oc.Error != nil:
		o.log.ErrorWithContext(ctx, oc.Component+" operation failed", oc.Error, fields, oc.Metadata)
	case o.slowThreshold > 0 && oc.Duration >= o.slowThreshold:
		fields["threshold_ms"] = float64(o.slowThreshold) / float64(time.Millisecond)
		o.log.WarnWithContext(ctx, "slow "+oc.Component+" operation", nil, fields, oc.Metadata)
	default:
		o.log.DebugWithContext(ctx, oc.Component+" operation", nil, fields, oc.Metadata)
	}
}
