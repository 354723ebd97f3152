package logger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// newObservedLogger creates a LoggerClient backed by an in-memory observer.
func newObservedLogger(level zapcore.Level, tracingEnabled bool) (*LoggerClient, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return NewFromZap(zap.New(core), tracingEnabled), logs
}

func TestNewLoggerClient_Levels(t *testing.T) {
	t.Parallel()
	cases := []struct {
		level    string
		expected zapcore.Level
	}{
		{Debug, zapcore.DebugLevel},
		{Info, zapcore.InfoLevel},
		{Warning, zapcore.WarnLevel},
		{Error, zapcore.ErrorLevel},
		{"unknown", zapcore.InfoLevel},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			t.Parallel()
			l, err := NewLoggerClient(Config{Level: tc.level, ServiceName: "test"})
			require.NoError(t, err)
			require.NotNil(t, l.Zap)
			assert.True(t, l.Zap.Core().Enabled(tc.expected))
			if tc.expected > zapcore.DebugLevel {
				assert.False(t, l.Zap.Core().Enabled(tc.expected-1))
			}
		})
	}
}

func TestNewLoggerClient_RejectsUnknownEncoding(t *testing.T) {
	t.Parallel()
	_, err := NewLoggerClient(Config{Encoding: "xml"})
	assert.Error(t, err)
}

func TestNewLoggerClient_WritesToFile(t *testing.T) {
	t.Parallel()
	out := filepath.Join(t.TempDir(), "app.log")

	l, err := NewLoggerClient(Config{Level: Info, ServiceName: "svc", OutputPaths: []string{out}})
	require.NoError(t, err)

	l.Info("written", nil)
	require.NoError(t, l.Sync())
	assert.FileExists(t, out)
}

func TestNewLoggerClient_TracingEnabled(t *testing.T) {
	t.Parallel()
	l, err := NewLoggerClient(Config{Level: Info, EnableTracing: true})
	require.NoError(t, err)
	assert.True(t, l.tracingEnabled)
}

func TestConvertToZapFields(t *testing.T) {
	t.Parallel()
	l, _ := newObservedLogger(zapcore.DebugLevel, false)

	assert.Empty(t, l.convertToZapFields(nil))

	fields := l.convertToZapFields(errors.New("oops"),
		map[string]interface{}{"key1": "val1"},
		map[string]interface{}{"key2": 42},
	)
	require.Len(t, fields, 3)
	assert.Equal(t, "error", fields[0].Key)
}

func TestLevels(t *testing.T) {
	t.Parallel()
	l, logs := newObservedLogger(zapcore.DebugLevel, false)

	l.Debug("d", nil)
	l.Info("i", nil, map[string]interface{}{"k": "v"})
	l.Warn("w", nil)
	l.Error("e", errors.New("boom"))

	entries := logs.All()
	require.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "v", entries[1].ContextMap()["k"])
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "boom", entries[3].ContextMap()["error"])
}

func TestDebug_SuppressedAtInfoLevel(t *testing.T) {
	t.Parallel()
	l, logs := newObservedLogger(zapcore.InfoLevel, false)
	l.Debug("should not appear", nil)
	l.DebugWithContext(context.Background(), "nor this", nil)
	assert.Zero(t, logs.Len())
}

func TestWithContext_NoSpan(t *testing.T) {
	t.Parallel()
	l, logs := newObservedLogger(zapcore.DebugLevel, true)

	l.InfoWithContext(context.Background(), "ctx info", nil)
	l.WarnWithContext(context.Background(), "ctx warn", nil)
	l.ErrorWithContext(context.Background(), "ctx error", errors.New("x"))

	require.Equal(t, 3, logs.Len())
	for _, e := range logs.All() {
		assert.NotContains(t, e.ContextMap(), "trace_id")
	}
}

func TestWithContext_RecordingSpanAddsIDs(t *testing.T) {
	t.Parallel()
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	l, logs := newObservedLogger(zapcore.InfoLevel, true)
	l.InfoWithContext(ctx, "traced", nil)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, span.SpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), fields["span_id"])
}

func TestWithContext_TracingDisabledOmitsIDs(t *testing.T) {
	t.Parallel()
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	l, logs := newObservedLogger(zapcore.InfoLevel, false)
	l.InfoWithContext(ctx, "untraced", nil)

	require.Equal(t, 1, logs.Len())
	assert.NotContains(t, logs.All()[0].ContextMap(), "trace_id")
}

func TestExtractTracingFields_NilContext(t *testing.T) {
	t.Parallel()
	l, _ := newObservedLogger(zapcore.DebugLevel, true)
	//nolint:staticcheck // intentionally passing nil to test guard
	assert.Empty(t, l.extractTracingFields(nil))
}

func TestNilAndNopClients(t *testing.T) {
	t.Parallel()
	var nilClient *LoggerClient

	assert.NotPanics(t, func() {
		nilClient.Info("dropped", nil)
		nilClient.ErrorWithContext(context.Background(), "dropped", errors.New("x"))
		assert.NoError(t, nilClient.Sync())

		nop := NewNop()
		nop.Warn("dropped", nil)
	})
}

func TestLoggerClient_ImplementsLogger(t *testing.T) {
	t.Parallel()
	var _ Logger = NewNop()
}
