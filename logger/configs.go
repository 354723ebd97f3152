package logger

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Encodings accepted by Config.Encoding.
const (
	EncodingJSON    = "json"
	EncodingConsole = "console"
)

// Config defines the configuration structure for the logger.
type Config struct {
	// Level is the minimum level written. Unknown values fall back to Info.
	//
	// Environment variable: LOGGER_LEVEL
	Level string `yaml:"level" envconfig:"LOGGER_LEVEL"`

	// EnableTracing adds trace_id and span_id to entries logged through the
	// *WithContext methods.
	//
	// Environment variable: LOGGER_ENABLE_TRACING
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`

	// ServiceName populates the "service" field of every entry.
	//
	// Environment variable: LOGGER_SERVICE_NAME
	ServiceName string `yaml:"service_name" envconfig:"LOGGER_SERVICE_NAME"`

	// Encoding is EncodingJSON (default) or EncodingConsole.
	//
	// Environment variable: LOGGER_ENCODING
	Encoding string `yaml:"encoding" envconfig:"LOGGER_ENCODING"`

	// OutputPaths are zap sink URLs or file paths. Defaults to stderr.
	//
	// Environment variable: LOGGER_OUTPUT_PATHS (comma separated)
	OutputPaths []string `yaml:"output_paths" envconfig:"LOGGER_OUTPUT_PATHS"`

	// CallerSkip is the number of stack frames skipped when reporting the caller.
	// Use 1 (the default) when calling the client directly and one more for every
	// wrapper layer in between.
	CallerSkip int `yaml:"caller_skip" envconfig:"LOGGER_CALLER_SKIP"`
}
