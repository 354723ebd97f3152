package config

import (
	"github.com/aalemi-dev/redmetrics/httpmetrics"
	"github.com/aalemi-dev/redmetrics/logger"
	"github.com/aalemi-dev/redmetrics/metrics"
	"github.com/aalemi-dev/redmetrics/sqlmetrics"
	"github.com/aalemi-dev/redmetrics/tracer"
)

// DefaultServerAddress is where the demo application listens by default.
const DefaultServerAddress = ":8080"

// Config aggregates the configuration of all packages.
type Config struct {
	// Service names the application. It is copied into the logger, metrics and
	// tracer configurations that do not set their own service name.
	//
	// Environment variable: SERVICE_NAME
	Service string `yaml:"service" envconfig:"SERVICE_NAME"`

	// Sections are read from the environment one by one, each with its own keys.
	Server      ServerConfig       `yaml:"server" ignored:"true"`
	Logger      logger.Config      `yaml:"logger" ignored:"true"`
	Metrics     metrics.Config     `yaml:"metrics" ignored:"true"`
	HTTPMetrics httpmetrics.Config `yaml:"httpmetrics" ignored:"true"`
	Tracer      tracer.Config      `yaml:"tracer" ignored:"true"`
	SQLMetrics  sqlmetrics.Config  `yaml:"sqlmetrics" ignored:"true"`
}

// ServerConfig configures the HTTP server of the application being instrumented.
type ServerConfig struct {
	// Address is the listen address. Defaults to ":8080".
	//
	// Environment variable: SERVER_ADDRESS
	Address string `yaml:"address" envconfig:"SERVER_ADDRESS"`
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Address: DefaultServerAddress},
		Logger: logger.Config{Level: logger.Info},
	}
}
