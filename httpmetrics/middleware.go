package httpmetrics

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"
)

// Middleware records every request passing through next.
//
// The path label comes from the router when one reports a pattern: net/http
// ServeMux, chi and gorilla/mux are recognised. Wrapping a handler twice, or
// mounting the middleware both around and inside a router, records each request
// once; inner instances only contribute the route pattern they can see.
//
// A panicking handler is recorded as a 500 and the panic is propagated.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if outer := ObservationFromContext(req.Context()); outer != nil {
			next.ServeHTTP(w, req)
			outer.SetRoutePattern(r.routePattern(next, req))
			return
		}
		if r.Excluded(req.URL.Path) {
			next.ServeHTTP(w, req)
			return
		}

		ctx := r.ExtractTrace(req.Context(), req.Header)
		ctx, obs := r.Begin(ctx, req.Method, req.Host, req.URL.Path)
		if routes, ok := next.(chi.Routes); ok && chi.RouteContext(ctx) == nil {
			// chi routes on a context it finds in the request instead of a fresh one,
			// which leaves the matched pattern readable here afterwards.
			rctx := chi.NewRouteContext()
			rctx.Routes = routes
			ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
		}
		req = req.WithContext(ctx)

		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		defer func() {
			if p := recover(); p != nil {
				obs.Finish(r.routePattern(next, req), http.StatusInternalServerError)
				panic(p)
			}
			obs.Finish(r.routePattern(next, req), ww.Status())
		}()

		next.ServeHTTP(ww, req)
	})
}

// Wrap instruments h. A *mux.Router additionally gets the middleware registered
// through Use, so the matched route template is visible; requests that match no
// route are still recorded by the outer instance.
func (r *Recorder) Wrap(h http.Handler) http.Handler {
	if router, ok := h.(*mux.Router); ok {
		router.Use(r.Middleware)
	}
	return r.Middleware(h)
}

// routePattern asks the routers it knows about for the pattern that matched req.
func (r *Recorder) routePattern(next http.Handler, req *http.Request) string {
	if r.cfg.DisableRoutePattern {
		return ""
	}

	if rctx := chi.RouteContext(req.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}

	if route := mux.CurrentRoute(req); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil && tpl != "" {
			return tpl
		}
	}

	// ServeMux sets Pattern on the request it was handed.
	if req.Pattern != "" {
		return req.Pattern
	}
	if sm, ok := next.(*http.ServeMux); ok {
		if _, p := sm.Handler(req); p != "" {
			return p
		}
	}
	return ""
}
