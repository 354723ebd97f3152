package pathnorm

const (
	// DefaultReplacement is the token written over dynamic path parts when neither
	// the rule nor the Config names one.
	DefaultReplacement = "foo"

	// RootPath is the label used for empty, missing or fully stripped paths.
	RootPath = "/"
)

// Rule rewrites the parts of a path matched by Pattern.
type Rule struct {
	// Pattern is a regular expression in RE2 syntax.
	Pattern string `yaml:"pattern" json:"pattern"`

	// Replacement is written over the matched text. Empty means the
	// normalizer-wide replacement token.
	Replacement string `yaml:"replacement" json:"replacement"`
}

// Config describes a Normalizer.
type Config struct {
	// Rules are applied in order, each one to the output of the previous.
	// Without rules the sanitized path is the label.
	Rules []Rule `yaml:"rules" json:"rules" ignored:"true"`

	// Replacement is the token used by rules that do not carry their own.
	// Defaults to DefaultReplacement.
	//
	// Environment variable: PATHNORM_REPLACEMENT
	Replacement string `yaml:"replacement" json:"replacement" envconfig:"PATHNORM_REPLACEMENT"`
}
