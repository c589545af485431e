package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes wires all route handlers onto the Echo instance.
func RegisterRoutes(e *echo.Echo, relay *RelayHandler, health *HealthHandler) {
	e.GET("/", health.Status)
	e.GET("/healthz", health.Healthz)

	e.GET("/solve/default", relay.SolveDefault)
	e.POST("/solve", relay.Solve)
}
