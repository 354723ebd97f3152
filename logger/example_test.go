package logger_test

import (
	"context"
	"errors"

	"github.com/aalemi-dev/redmetrics/logger"
)

func ExampleNewLoggerClient() {
	log, err := logger.NewLoggerClient(logger.Config{
		Level:       logger.Info,
		ServiceName: "example-service",
	})
	if err != nil {
		panic(err)
	}

	log.Info("metrics server started", nil, map[string]interface{}{
		"address": ":9091",
	})
}

func ExampleLoggerClient_ErrorWithContext() {
	log, _ := logger.NewLoggerClient(logger.Config{
		Level:         logger.Info,
		ServiceName:   "example-service",
		EnableTracing: true,
	})

	log.ErrorWithContext(context.Background(), "query failed", errors.New("connection refused"), map[string]interface{}{
		"dbhost": "localhost",
		"table":  "users",
	})
}
