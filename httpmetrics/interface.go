package httpmetrics

import "context"

// RequestLabels are the label values recorded for one request.
type RequestLabels struct {
	Path   string
	Method string
	Status string

	// Domain is set only when Config.IncludeDomain is.
	Domain string

	// Extra holds a value for every name in Config.ExtraLabels, "" when none was
	// supplied.
	Extra map[string]string
}

// PathLabeler overrides path label resolution. It receives the raw request path
// and the router pattern (possibly empty) and returns the label to use; returning
// "" falls back to the default resolution.
type PathLabeler func(rawPath, pattern string) string

// LabelMaker supplies values for Config.ExtraLabels, for example a tenant taken
// from ctx. It runs once per request, after the response, and receives the
// labels resolved so far; Extra is not yet set. Names not declared in
// Config.ExtraLabels are ignored.
type LabelMaker func(ctx context.Context, labels RequestLabels) map[string]string

// Option configures a Recorder.
type Option func(*Recorder)
