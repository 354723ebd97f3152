package sqlmetrics

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// ConnInfo identifies the database a DSN points at.
type ConnInfo struct {
	DBName string
	DBHost string
}

// Driver maps driver names and aliases to DriverPostgres or DriverMySQL. Anything
// after a colon is ignored, so "postgres:replica" is a postgres driver.
func Driver(name string) (string, error) {
	base, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(name)), ":")
	switch base {
	case "postgres", "postgresql", "pgx":
		return DriverPostgres, nil
	case "mysql", "mariadb":
		return DriverMySQL, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDriver, name)
}

// ParseDSN extracts the database name and host from dsn. Postgres accepts both URL
// and keyword/value forms; mysql expects the go-sql-driver format
// "user:password@tcp(host:port)/dbname". A DSN without a host reports "localhost".
func ParseDSN(driver, dsn string) (ConnInfo, error) {
	d, err := Driver(driver)
	if err != nil {
		return ConnInfo{}, err
	}

	var info ConnInfo
	switch d {
	case DriverPostgres:
		cfg, err := pgconn.ParseConfig(dsn)
		if err != nil {
			return ConnInfo{}, fmt.Errorf("%w: %w", ErrInvalidDSN, err)
		}
		info.DBName = cfg.Database
		if cfg.Host != "" {
			info.DBHost = net.JoinHostPort(cfg.Host, strconv.Itoa(int(cfg.Port)))
		}
	case DriverMySQL:
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return ConnInfo{}, fmt.Errorf("%w: %w", ErrInvalidDSN, err)
		}
		info.DBName = cfg.DBName
		info.DBHost = cfg.Addr
	}

	if info.DBHost == "" {
		info.DBHost = "localhost"
	}
	return info, nil
}
