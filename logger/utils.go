package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Debug logs msg at debug level. err, when non-nil, is added as the "error" field.
func (l *LoggerClient) Debug(msg string, err error, fields ...map[string]interface{}) {
	l.write(nil, zapcore.DebugLevel, msg, err, fields)
}

// Info logs msg at info level.
func (l *LoggerClient) Info(msg string, err error, fields ...map[string]interface{}) {
	l.write(nil, zapcore.InfoLevel, msg, err, fields)
}

// Warn logs msg at warn level.
func (l *LoggerClient) Warn(msg string, err error, fields ...map[string]interface{}) {
	l.write(nil, zapcore.WarnLevel, msg, err, fields)
}

// Error logs msg at error level.
func (l *LoggerClient) Error(msg string, err error, fields ...map[string]interface{}) {
	l.write(nil, zapcore.ErrorLevel, msg, err, fields)
}

// Fatal logs at fatal level and exits the process.
func (l *LoggerClient) Fatal(msg string, err error, fields ...map[string]interface{}) {
	l.write(nil, zapcore.FatalLevel, msg, err, fields)
}

// DebugWithContext is Debug with the trace and span IDs of ctx, when tracing is
// enabled.
func (l *LoggerClient) DebugWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.DebugLevel, msg, err, fields)
}

// InfoWithContext is Info with the trace and span IDs of ctx.
func (l *LoggerClient) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.InfoLevel, msg, err, fields)
}

// WarnWithContext is Warn with the trace and span IDs of ctx.
func (l *LoggerClient) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.WarnLevel, msg, err, fields)
}

// ErrorWithContext is Error with the trace and span IDs of ctx.
func (l *LoggerClient) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.ErrorLevel, msg, err, fields)
}

// FatalWithContext logs at fatal level and exits the process.
func (l *LoggerClient) FatalWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	l.write(ctx, zapcore.FatalLevel, msg, err, fields)
}

// Sync flushes buffered entries.
func (l *LoggerClient) Sync() error {
	if l == nil || l.Zap == nil {
		return nil
	}
	return l.Zap.Sync()
}

func (l *LoggerClient) write(ctx context.Context, level zapcore.Level, msg string, err error, fields []map[string]interface{}) {
	if l == nil || l.Zap == nil {
		return
	}

	// Skip field conversion for entries the core would drop anyway. Fatal must
	// always reach the core so the process exits.
	ce := l.Zap.Check(level, msg)
	if ce == nil {
		return
	}

	zf := l.convertToZapFields(err, fields...)
	zf = append(zf, l.extractTracingFields(ctx)...)
	ce.Write(zf...)
}

// convertToZapFields flattens an optional error and field maps into zap fields.
func (l *LoggerClient) convertToZapFields(err error, fields ...map[string]interface{}) []zap.Field {
	size := 0
	for _, m := range fields {
		size += len(m)
	}
	if err != nil {
		size++
	}
	if size == 0 {
		return nil
	}

	zf := make([]zap.Field, 0, size+2)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	for _, m := range fields {
		for k, v := range m {
			zf = append(zf, zap.Any(k, v))
		}
	}
	return zf
}

// extractTracingFields returns trace_id and span_id of the recording span in ctx.
func (l *LoggerClient) extractTracingFields(ctx context.Context) []zap.Field {
	if !l.tracingEnabled || ctx == nil {
		return nil
	}

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return nil
	}

	sc := span.SpanContext()
	if !sc.IsValid() {
		return nil
	}

	return []zap.Field{
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	}
}
