package sqlmetrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aalemi-dev/redmetrics/logger"
	"github.com/aalemi-dev/redmetrics/metrics"
	"github.com/aalemi-dev/redmetrics/sqlmetrics"
)

type product struct {
	ID   uint
	Name string
}

func TestFXModule_ProvidesPluginAndStats(t *testing.T) {
	var (
		plugin *sqlmetrics.Plugin
		stats  *sqlmetrics.StatsEmitter
	)

	app := fxtest.New(t,
		metrics.FXModule,
		sqlmetrics.FXModule,
		fx.Provide(func() metrics.Config {
			return metrics.Config{
				ServiceName:               "fx-test",
				SystemMetricsAddress:      metrics.Ptr(""),
				ApplicationMetricsAddress: metrics.Ptr(""),
			}
		}),
		fx.Provide(func() sqlmetrics.Config {
			return sqlmetrics.Config{Driver: "postgres", DSN: "postgres://app@db.internal:5432/shop"}
		}),
		fx.Provide(func() logger.Logger { return logger.NewNop() }),
		fx.Populate(&plugin, &stats),
	)
	app.RequireStart()
	defer app.RequireStop()

	require.NotNil(t, plugin)
	require.NotNil(t, stats)
	assert.Equal(t, sqlmetrics.ConnInfo{DBName: "shop", DBHost: "db.internal:5432"}, plugin.ConnInfo())

	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "postgres://app@db.internal:5432/shop"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	assert.NoError(t, db.Use(plugin))
	assert.NoError(t, db.Find(&[]product{}).Error)
}

func TestFXModule_InvalidDriverFailsStartup(t *testing.T) {
	app := fx.New(
		fx.NopLogger,
		metrics.FXModule,
		sqlmetrics.FXModule,
		fx.Provide(func() metrics.Config {
			return metrics.Config{SystemMetricsAddress: metrics.Ptr(""), ApplicationMetricsAddress: metrics.Ptr("")}
		}),
		fx.Provide(func() sqlmetrics.Config { return sqlmetrics.Config{Driver: "oracle"} }),
		fx.Invoke(func(*sqlmetrics.Plugin) {}),
	)

	require.Error(t, app.Err())
	assert.ErrorContains(t, app.Err(), sqlmetrics.ErrUnsupportedDriver.Error())
}
