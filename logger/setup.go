package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerClient is a wrapper around Uber's Zap logger. It implements Logger.
//
// A nil *LoggerClient discards all entries.
type LoggerClient struct {
	// Zap is the underlying logger, exposed for zap-specific needs.
	Zap *zap.Logger

	tracingEnabled bool
}

// NewLoggerClient builds a logger from cfg.
func NewLoggerClient(cfg Config) (*LoggerClient, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderCfg.EncodeDuration = zapcore.MillisDurationEncoder

	encoding := cfg.Encoding
	switch encoding {
	case "":
		encoding = EncodingJSON
	case EncodingJSON, EncodingConsole:
	default:
		return nil, fmt.Errorf("logger: unsupported encoding %q", cfg.Encoding)
	}

	outputs := cfg.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	callerSkip := cfg.CallerSkip
	if callerSkip <= 0 {
		callerSkip = 1
	}

	zcfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(cfg.Level)),
		Encoding:         encoding,
		EncoderConfig:    encoderCfg,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		InitialFields: map[string]interface{}{
			"pid":     os.Getpid(),
			"service": cfg.ServiceName,
		},
	}

	// +1 for the shared write helper every logging method goes through.
	z, err := zcfg.Build(zap.AddCaller(), zap.AddCallerSkip(callerSkip+1))
	if err != nil {
		return nil, fmt.Errorf("logger: build zap logger: %w", err)
	}

	return &LoggerClient{Zap: z, tracingEnabled: cfg.EnableTracing}, nil
}

// NewFromZap wraps an existing zap logger, typically one built on a test core.
func NewFromZap(z *zap.Logger, enableTracing bool) *LoggerClient {
	if z == nil {
		z = zap.NewNop()
	}
	return &LoggerClient{Zap: z, tracingEnabled: enableTracing}
}

// NewNop returns a logger that discards everything.
func NewNop() *LoggerClient {
	return &LoggerClient{Zap: zap.NewNop()}
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case Debug:
		return zap.DebugLevel
	case Warning:
		return zap.WarnLevel
	case Error:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
