package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// DefaultEnvFile is read by Load when no env files are given.
const DefaultEnvFile = ".env"

// Load builds the configuration from Default, then the YAML file at path, then
// envFiles (DefaultEnvFile when none are given), then the environment. Missing
// files are skipped; an empty path skips the YAML step. Variables already present
// in the environment take precedence over env files.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := readFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	cfg.propagateService()
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return Decode(f, cfg)
}

// Decode reads YAML from r into cfg. Unknown keys are an error.
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// applyEnv overrides cfg with the variables documented on each package's Config.
// Unset variables leave the current values alone.
func applyEnv(cfg *Config) error {
	specs := []struct {
		name string
		spec interface{}
	}{
		{"service", cfg},
		{"server", &cfg.Server},
		{"logger", &cfg.Logger},
		{"metrics", &cfg.Metrics},
		{"httpmetrics", &cfg.HTTPMetrics},
		{"tracer", &cfg.Tracer},
		{"sqlmetrics", &cfg.SQLMetrics},
	}
	for _, s := range specs {
		if err := envconfig.Process("", s.spec); err != nil {
			return fmt.Errorf("failed to read %s environment: %w", s.name, err)
		}
	}
	return nil
}

func (c *Config) propagateService() {
	if c.Service == "" {
		return
	}
	if c.Logger.ServiceName == "" {
		c.Logger.ServiceName = c.Service
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = c.Service
	}
	if c.Tracer.ServiceName == "" {
		c.Tracer.ServiceName = c.Service
	}
}
