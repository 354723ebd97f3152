// Package fibermetrics records RED metrics for fiber applications.
//
//	app := fiber.New()
//	app.Use(fibermetrics.New(rec))
//	app.Get("/users/:id", getUser)
//
// Requests are labelled by the registered route path ("/users/:id"). Requests that
// no route handled fall back to the recorder's normalization rules. Handler errors
// are recorded with the status they will be answered with: the code of a
// *fiber.Error, or 500 for any other error.
package fibermetrics
