package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/aalemi-dev/redmetrics/config"
	"github.com/aalemi-dev/redmetrics/httpmetrics"
	"github.com/aalemi-dev/redmetrics/sqlmetrics"
)

func TestFXModuleProvidesSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "server:\n  address: \":9100\"\nhttpmetrics:\n  max_path_labels: 42\nsqlmetrics:\n  driver: mysql\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	var (
		server config.ServerConfig
		http   httpmetrics.Config
		sql    sqlmetrics.Config
	)
	app := fxtest.New(t,
		config.FXModule(path, filepath.Join(dir, "missing.env")),
		fx.Populate(&server, &http, &sql),
	)
	app.RequireStart()
	defer app.RequireStop()

	assert.Equal(t, ":9100", server.Address)
	assert.Equal(t, 42, http.MaxPathLabels)
	assert.Equal(t, "mysql", sql.Driver)
}

func TestFXModuleLoadError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("unknown: true\n"), 0o600))

	app := fx.New(
		fx.NopLogger,
		config.FXModule(path, filepath.Join(dir, "missing.env")),
		fx.Invoke(func(config.ServerConfig) {}),
	)
	require.Error(t, app.Err())
	assert.ErrorContains(t, app.Err(), "failed to decode config")
}
