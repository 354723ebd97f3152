package httpmetrics

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aalemi-dev/redmetrics/observability"
	"github.com/aalemi-dev/redmetrics/pathnorm"
	"github.com/aalemi-dev/redmetrics/tracer"
)

type observationKey struct{}

// Observation is one in-flight request. It is created by Recorder.Begin and
// recorded exactly once by Finish.
type Observation struct {
	rec     *Recorder
	ctx     context.Context
	method  string
	host    string
	rawPath string
	start   time.Time
	span    tracer.Span

	// pattern is offered by instrumentation nested inside the router.
	pattern  string
	finished atomic.Bool

	mu    sync.Mutex
	extra map[string]string
}

// ObservationFromContext returns the observation of the request ctx belongs to,
// or nil.
func ObservationFromContext(ctx context.Context) *Observation {
	if ctx == nil {
		return nil
	}
	obs, _ := ctx.Value(observationKey{}).(*Observation)
	return obs
}

// SetRoutePattern offers the route pattern seen by instrumentation that runs inside
// the router. The innermost offer wins over the outer recorder's own discovery.
// It must be called from the goroutine serving the request.
func (o *Observation) SetRoutePattern(pattern string) {
	if o == nil || pattern == "" {
		return
	}
	o.pattern = pattern
}

// SetLabel sets the value of one of Config.ExtraLabels for this request. It wins
// over the LabelMaker. Names not declared in Config.ExtraLabels are ignored.
func (o *Observation) SetLabel(name, value string) {
	if o == nil {
		return
	}
	if _, ok := o.rec.extraIndex[name]; !ok {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.extra == nil {
		o.extra = make(map[string]string, len(o.rec.cfg.ExtraLabels))
	}
	o.extra[name] = value
}

// ExtractTrace restores the caller's trace context from request headers when
// tracing is enabled. Otherwise ctx is returned unchanged.
func (r *Recorder) ExtractTrace(ctx context.Context, header http.Header) context.Context {
	if !r.TracingEnabled() || len(header) == 0 {
		return ctx
	}
	return r.tracer.ExtractHTTP(ctx, header)
}

// Begin starts observing a request. It returns a nil Observation, and ctx
// unchanged, when the request is excluded or already observed by an outer recorder;
// Finish on a nil Observation is a no-op, so callers need not check.
func (r *Recorder) Begin(ctx context.Context, method, host, rawPath string) (context.Context, *Observation) {
	if ctx == nil {
		ctx = context.Background()
	}
	if ObservationFromContext(ctx) != nil || r.Excluded(rawPath) {
		return ctx, nil
	}

	obs := &Observation{
		rec:     r,
		method:  normalizeMethod(method),
		host:    host,
		rawPath: rawPath,
		start:   r.now(),
	}

	if r.TracingEnabled() {
		ctx, obs.span = r.tracer.StartServerSpan(ctx, obs.method)
	}

	ctx = context.WithValue(ctx, observationKey{}, obs)
	obs.ctx = ctx
	return ctx, obs
}

// Excluded reports whether requests for rawPath are never recorded.
func (r *Recorder) Excluded(rawPath string) bool {
	_, ok := r.excluded[pathnorm.Sanitize(rawPath)]
	return ok
}

// Finish records the request with the given router pattern (empty when the router
// reported none) and response status. A status of 0 means the handler never wrote
// a header and is recorded as 200. Only the first call records.
func (o *Observation) Finish(pattern string, status int) RequestLabels {
	if o == nil || !o.finished.CompareAndSwap(false, true) {
		return RequestLabels{}
	}
	r := o.rec

	elapsed := r.now().Sub(o.start)
	if status == 0 {
		status = http.StatusOK
	}
	if o.pattern != "" {
		pattern = o.pattern
	}

	labels := RequestLabels{
		Path:   r.PathLabel(o.rawPath, pattern),
		Method: o.method,
		Status: strconv.Itoa(status),
	}
	values := []string{labels.Path, labels.Method, labels.Status}
	if r.cfg.IncludeDomain {
		labels.Domain = domainOf(o.host)
		values = append(values, labels.Domain)
	}
	if len(r.cfg.ExtraLabels) > 0 {
		labels.Extra = o.extraLabels(labels)
		for _, name := range r.cfg.ExtraLabels {
			values = append(values, labels.Extra[name])
		}
	}

	r.requests.WithLabelValues(values...).Inc()
	r.duration.WithLabelValues(values...).Observe(float64(elapsed) / float64(time.Millisecond))

	var failure error
	if status >= http.StatusInternalServerError {
		failure = fmt.Errorf("%w: %d", errServerError, status)
	}

	if o.span != nil {
		o.span.SetName(labels.Method + " " + labels.Path)
		o.span.SetAttributes(map[string]interface{}{
			"http.method":      labels.Method,
			"http.route":       labels.Path,
			"http.status_code": status,
		})
		if failure != nil {
			o.span.RecordError(failure)
		}
		o.span.End()
	}

	if r.observer != nil {
		r.observer.ObserveOperation(observability.OperationContext{
			Context:     o.ctx,
			Component:   "http",
			Operation:   labels.Method,
			Resource:    labels.Path,
			SubResource: labels.Status,
			Duration:    elapsed,
			Error:       failure,
			Metadata:    o.metadata(labels),
		})
	}

	return labels
}

// extraLabels resolves every declared extra label: SetLabel first, then the
// LabelMaker, else "".
func (o *Observation) extraLabels(labels RequestLabels) map[string]string {
	r := o.rec
	out := make(map[string]string, len(r.cfg.ExtraLabels))
	for _, name := range r.cfg.ExtraLabels {
		out[name] = ""
	}
	if r.labelMaker != nil {
		for name, value := range r.labelMaker(o.ctx, labels) {
			if _, ok := r.extraIndex[name]; ok {
				out[name] = value
			}
		}
	}
	o.mu.Lock()
	for name, value := range o.extra {
		out[name] = value
	}
	o.mu.Unlock()
	return out
}

func (o *Observation) metadata(labels RequestLabels) map[string]interface{} {
	md := map[string]interface{}{"host": o.host}
	for name, value := range labels.Extra {
		md[name] = value
	}
	return md
}

// PathLabel resolves the path label for a request: the PathLabeler option first,
// then the router pattern, then the normalized raw path. The cardinality cap
// applies to the result.
func (r *Recorder) PathLabel(rawPath, pattern string) string {
	label := ""
	if r.pathLabeler != nil {
		label = r.pathLabeler(rawPath, pattern)
	}
	if label == "" && !r.cfg.DisableRoutePattern {
		label = cleanPattern(pattern)
		// A catch-all route says nothing about the path; rules know more.
		if len(r.cfg.Rules) > 0 && isCatchAll(label) {
			label = ""
		}
	}
	if label == "" {
		label = r.normalizer.Normalize(rawPath)
	}
	return r.limiter.admit(label)
}

// cleanPattern strips the method and host of ServeMux patterns such as
// "GET example.com/users/{id}".
func cleanPattern(pattern string) string {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return ""
	}
	if strings.HasPrefix(pattern, "/") {
		return pattern
	}
	if i := strings.IndexAny(pattern, " \t"); i >= 0 {
		pattern = strings.TrimSpace(pattern[i+1:])
	}
	if i := strings.IndexByte(pattern, '/'); i > 0 {
		pattern = pattern[i:]
	}
	if !strings.HasPrefix(pattern, "/") {
		return ""
	}
	return pattern
}

// isCatchAll reports whether pattern matches whole subtrees: ServeMux "/" and
// "/static/" or "/{rest...}", chi and fiber "/*", gin "/*filepath", fiber "/+".
func isCatchAll(pattern string) bool {
	if pattern == "" {
		return false
	}
	if strings.HasSuffix(pattern, "/") || strings.HasSuffix(pattern, "...}") {
		return true
	}
	last := pattern[strings.LastIndexByte(pattern, '/')+1:]
	return strings.HasPrefix(last, "*") || last == "+"
}

var knownMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodConnect: {},
	http.MethodOptions: {},
	http.MethodTrace:   {},
}

// normalizeMethod folds arbitrary client-chosen methods into "OTHER".
func normalizeMethod(method string) string {
	m := strings.ToUpper(method)
	if m == "" {
		return http.MethodGet
	}
	if _, ok := knownMethods[m]; ok {
		return m
	}
	return "OTHER"
}

func domainOf(host string) string {
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(strings.TrimSuffix(host, "."))
}

// labelLimiter admits at most max distinct values and maps the rest to overflow.
type labelLimiter struct {
	max      int
	overflow string

	mu   sync.RWMutex
	seen map[string]struct{}
}

func newLabelLimiter(max int, overflow string) *labelLimiter {
	if max <= 0 {
		return nil
	}
	return &labelLimiter{max: max, overflow: overflow, seen: make(map[string]struct{}, max)}
}

func (l *labelLimiter) admit(v string) string {
	if l == nil {
		return v
	}

	l.mu.RLock()
	_, ok := l.seen[v]
	full := len(l.seen) >= l.max
	l.mu.RUnlock()
	if ok {
		return v
	}
	if full {
		return l.overflow
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.seen[v]; ok {
		return v
	}
	if len(l.seen) >= l.max {
		return l.overflow
	}
	l.seen[v] = struct{}{}
	return v
}
