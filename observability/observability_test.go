package observability_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/aalemi-dev/redmetrics/logger"
	"github.com/aalemi-dev/redmetrics/observability"
)

type recordingObserver struct {
	calls []observability.OperationContext
}

func (r *recordingObserver) ObserveOperation(ctx observability.OperationContext) {
	r.calls = append(r.calls, ctx)
}

func TestNoOpObserver(t *testing.T) {
	assert.NotPanics(t, func() {
		observability.NewNoOpObserver().ObserveOperation(observability.OperationContext{Component: "http"})
	})
}

func TestMulti(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}

	obs := observability.Multi(a, nil, b)
	obs.ObserveOperation(observability.OperationContext{Component: "sql", Operation: "select", Resource: "users"})

	require.Len(t, a.calls, 1)
	require.Len(t, b.calls, 1)
	assert.Equal(t, "users", b.calls[0].Resource)
}

func TestMulti_Degenerate(t *testing.T) {
	assert.IsType(t, &observability.NoOpObserver{}, observability.Multi())
	assert.IsType(t, &observability.NoOpObserver{}, observability.Multi(nil, nil))

	only := &recordingObserver{}
	assert.Same(t, only, observability.Multi(only))
}

func newObservedLog(level zapcore.Level) (logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return logger.NewFromZap(zap.New(core), false), logs
}

func TestLogObserver_Levels(t *testing.T) {
	log, logs := newObservedLog(zapcore.DebugLevel)
	obs := observability.NewLogObserver(log, 100*time.Millisecond)

	obs.ObserveOperation(observability.OperationContext{
		Component: "sql", Operation: "select", Resource: "users",
		Duration: 5 * time.Millisecond, Error: errors.New("connection reset"),
	})
	obs.ObserveOperation(observability.OperationContext{
		Component: "http", Operation: "GET", Resource: "/users/{id}", SubResource: "200",
		Duration: 250 * time.Millisecond,
	})
	obs.ObserveOperation(observability.OperationContext{
		Component: "http", Operation: "GET", Resource: "/health", SubResource: "200",
		Duration: time.Millisecond,
	})

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "connection reset", entries[0].ContextMap()["error"])
	assert.Equal(t, "users", entries[0].ContextMap()["resource"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "slow http operation", entries[1].Message)
	assert.Equal(t, 250.0, entries[1].ContextMap()["duration_ms"])

	assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
}

func TestLogObserver_ZeroThresholdNeverWarns(t *testing.T) {
	log, logs := newObservedLog(zapcore.InfoLevel)
	obs := observability.NewLogObserver(log, 0)

	obs.ObserveOperation(observability.OperationContext{Component: "http", Duration: time.Hour})

	assert.Zero(t, logs.Len())
}

func TestLogObserver_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		observability.NewLogObserver(nil, time.Second).ObserveOperation(observability.OperationContext{
			Error: errors.New("x"),
		})
	})
}
