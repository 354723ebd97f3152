// Package logger provides the structured logger shared by the redmetrics packages.
//
// LoggerClient wraps a zap.Logger with a small message/error/fields API:
//
//	log, err := logger.NewLoggerClient(logger.Config{Level: logger.Info, ServiceName: "checkout"})
//	if err != nil {
//		return err
//	}
//	log.Info("metrics server started", nil, map[string]interface{}{"address": ":9091"})
//
// Entries are JSON encoded with an ISO8601 "timestamp", capitalised levels and the
// process ID and service name as initial fields.
//
// The *WithContext variants add "trace_id" and "span_id" from the OpenTelemetry span
// carried by the context when Config.EnableTracing is set. The HTTP and SQL
// instrumentation log through these variants so that a slow query or a failed request
// can be joined with its trace.
//
// Components that log accept the Logger interface and treat it as optional. A nil
// *LoggerClient is valid and discards everything, and NewNop returns a client backed
// by zap's no-op core.
//
// With fx, FXModule provides *LoggerClient and Logger from a Config and flushes the
// logger when the application stops.
package logger
