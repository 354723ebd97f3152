package fibermetrics

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aalemi-dev/redmetrics/httpmetrics"
)

// New returns middleware recording every request through rec. Register it with
// app.Use before the routes.
func New(rec *httpmetrics.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		ctx := c.UserContext()
		if httpmetrics.ObservationFromContext(ctx) != nil {
			return c.Next()
		}

		// fasthttp reuses these buffers once the handler returns.
		rawPath := strings.Clone(c.Path())
		if rec.Excluded(rawPath) {
			return c.Next()
		}
		method := strings.Clone(c.Method())
		host := string(c.Request().Host())

		if rec.TracingEnabled() {
			ctx = rec.ExtractTrace(ctx, requestHeader(c))
		}
		ctx, obs := rec.Begin(ctx, method, host, rawPath)
		c.SetUserContext(ctx)

		own := c.Route()
		defer func() {
			if p := recover(); p != nil {
				obs.Finish(routePath(c, own, nil), http.StatusInternalServerError)
				panic(p)
			}
			obs.Finish(routePath(c, own, err), status(c, err))
		}()

		return c.Next()
	}
}

// routePath returns the path of the route that handled the request, or "" when
// fiber found none. After Next, c.Route() is the last route fiber matched; if that
// is still this middleware's route, nothing further matched.
func routePath(c *fiber.Ctx, own *fiber.Route, err error) string {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code == fiber.StatusNotFound {
		return ""
	}
	route := c.Route()
	if route == nil || route == own {
		return ""
	}
	return route.Path
}

// status is the code the response will carry once the app's error handler has run.
func status(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

func requestHeader(c *fiber.Ctx) http.Header {
	header := http.Header{}
	for k, values := range c.GetReqHeaders() {
		for _, v := range values {
			header.Add(k, v)
		}
	}
	return header
}
