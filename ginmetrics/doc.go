// Package ginmetrics records RED metrics for gin engines.
//
// The middleware is a thin adapter over httpmetrics.Recorder: requests are
// labelled by the matched route (c.FullPath(), e.g. "/users/:id") and fall back to
// the recorder's normalization rules when no route matched.
//
//	rec, err := httpmetrics.NewRecorder(httpmetrics.Config{}, collector)
//	...
//	engine := gin.New()
//	engine.Use(ginmetrics.New(rec))
//	engine.GET("/metrics", gin.WrapH(collector.ScrapeHandler()))
//
// Register it with Use before the routes so that unmatched requests are recorded
// too.
package ginmetrics
