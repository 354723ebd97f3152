package sqlmetrics

import "errors"

var (
	// ErrUnsupportedDriver is returned for drivers other than postgres and mysql.
	ErrUnsupportedDriver = errors.New("unsupported sql driver")

	// ErrInvalidDSN is returned when the data source name cannot be parsed.
	ErrInvalidDSN = errors.New("invalid dsn")

	// ErrInvalidConfig is returned by NewPlugin and NewStatsEmitter for unusable
	// configurations, including metric names already registered on the collector.
	ErrInvalidConfig = errors.New("invalid sqlmetrics configuration")
)
