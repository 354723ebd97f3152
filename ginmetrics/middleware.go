package ginmetrics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aalemi-dev/redmetrics/httpmetrics"
)

// New returns middleware recording every request handled by the engine through rec.
//
// When the engine itself is served behind rec.Middleware, the outer instance owns
// the observation and this one only reports the gin route template. A panicking
// handler is recorded as a 500 and the panic is propagated to gin's recovery.
func New(rec *httpmetrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := c.Request

		if outer := httpmetrics.ObservationFromContext(req.Context()); outer != nil {
			c.Next()
			outer.SetRoutePattern(c.FullPath())
			return
		}
		if rec.Excluded(req.URL.Path) {
			c.Next()
			return
		}

		ctx := rec.ExtractTrace(req.Context(), req.Header)
		ctx, obs := rec.Begin(ctx, req.Method, req.Host, req.URL.Path)
		c.Request = req.WithContext(ctx)

		defer func() {
			if p := recover(); p != nil {
				obs.Finish(c.FullPath(), http.StatusInternalServerError)
				panic(p)
			}
			obs.Finish(c.FullPath(), c.Writer.Status())
		}()

		c.Next()
	}
}
