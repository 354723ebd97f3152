package tracer

// Config defines the configuration of the tracer client.
type Config struct {
	// ServiceName is recorded as the service.name resource attribute.
	//
	// Environment variable: TRACER_SERVICE_NAME
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is recorded as the deployment.environment resource attribute.
	//
	// Environment variable: TRACER_APP_ENV
	AppEnv string `yaml:"app_env" envconfig:"TRACER_APP_ENV"`

	// EnableExport ships spans to an OTLP/HTTP collector. When false spans are
	// still created and propagated but never leave the process.
	//
	// Environment variable: TRACER_ENABLE_EXPORT
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`

	// Endpoint is the collector's host:port. Empty defers to the standard
	// OTEL_EXPORTER_OTLP_* environment variables.
	//
	// Environment variable: TRACER_ENDPOINT
	Endpoint string `yaml:"endpoint" envconfig:"TRACER_ENDPOINT"`

	// Insecure talks plain HTTP to the collector.
	//
	// Environment variable: TRACER_INSECURE
	Insecure bool `yaml:"insecure" envconfig:"TRACER_INSECURE"`

	// SampleRatio is the fraction of new traces sampled, between 0 and 1. Zero
	// means sample everything. Incoming sampled parents are always honoured.
	//
	// Environment variable: TRACER_SAMPLE_RATIO
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"TRACER_SAMPLE_RATIO"`
}
