package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"solver-relay/internal/model"
)

// Version is a string type for dependency injection of the build version.
type Version string

// HealthHandler serves health and status endpoints.
type HealthHandler struct {
	solverURL string
	version   Version
}

// NewHealthHandler creates a HealthHandler reporting the relay's solver URL.
func NewHealthHandler(solverURL string, v Version) *HealthHandler {
	return &HealthHandler{solverURL: solverURL, version: v}
}

// Healthz returns a simple OK response for liveness probes.
func (h *HealthHandler) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": string(h.version),
	})
}

// Status describes the relay: its solver URL and the routes it serves.
func (h *HealthHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, model.StatusResponse{
		Status:    "ok",
		SolverURL: h.solverURL,
		Endpoints: model.Endpoints,
	})
}
