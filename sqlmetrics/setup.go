package sqlmetrics

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Dialector returns the gorm dialector for driver, opened on dsn.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	d, err := Driver(driver)
	if err != nil {
		return nil, err
	}
	if d == DriverMySQL {
		return mysql.Open(dsn), nil
	}
	return postgres.Open(dsn), nil
}

// Open connects to cfg.DSN, applies the pool settings of cfg.ConnectionDetails and
// installs plugin. A nil plugin opens an uninstrumented connection.
func Open(cfg Config, plugin *Plugin) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", dialector.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get %s database instance: %w", dialector.Name(), err)
	}

	// Zero means the package default.
	maxOpen := cfg.ConnectionDetails.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 50
	}
	maxIdle := cfg.ConnectionDetails.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 25
	}
	maxLifetime := cfg.ConnectionDetails.ConnMaxLifetime
	if maxLifetime <= 0 {
		maxLifetime = time.Minute
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(maxLifetime)

	if plugin != nil {
		if err := db.Use(plugin); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to install sql metrics plugin: %w", err)
		}
	}
	return db, nil
}
