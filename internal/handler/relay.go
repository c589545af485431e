// Package handler exposes the relay over HTTP.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"solver-relay/internal/model"
	"solver-relay/internal/service"
)

// Error messages of the two gateway-error envelopes.
const (
	errSolverAPI   = "Solver API error"
	errCallFailure = "Failed to call solver API"
)

// RelayHandler serves the solve routes.
type RelayHandler struct {
	service *service.RelayService
	logger  *slog.Logger
}

// NewRelayHandler creates a RelayHandler.
func NewRelayHandler(svc *service.RelayService, logger *slog.Logger) *RelayHandler {
	return &RelayHandler{
		service: svc,
		logger:  logger.With("component", "relay_handler"),
	}
}

// SolveDefault runs the solver with its default inputs.
func (h *RelayHandler) SolveDefault(c echo.Context) error {
	result, err := h.service.SolveDefault(solverContext(c), requestID(c))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSONBlob(http.StatusOK, result)
}

// Solve forwards the JSON request body to the solver. A body sent without a
// JSON content type is read but not forwarded.
func (h *RelayHandler) Solve(c echo.Context) error {
	// BodyLimit wraps the reader; exceeding it surfaces here as a 413 HTTPError.
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable request body").SetInternal(err)
	}
	if !isJSONRequest(c.Request()) {
		body = nil
	}

	result, err := h.service.Solve(solverContext(c), requestID(c), body)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSONBlob(http.StatusOK, result)
}

// mapError renders relay failures as 502 envelopes.
func (h *RelayHandler) mapError(c echo.Context, err error) error {
	h.logger.Error("relay error",
		"err", err,
		"path", c.Request().URL.Path,
		"request_id", requestID(c),
	)

	var de *service.DownstreamError
	if errors.As(err, &de) {
		return c.JSON(http.StatusBadGateway, model.DownstreamErrorBody{
			Error:  errSolverAPI,
			Status: de.StatusCode,
			Body:   de.Body,
		})
	}

	details := err.Error()
	var te *service.TransportError
	if errors.As(err, &te) {
		details = te.Details()
	}

	return c.JSON(http.StatusBadGateway, model.TransportErrorBody{
		Error:     errCallFailure,
		SolverURL: h.service.SolverURL(),
		Details:   details,
	})
}

// solverContext keeps request-scoped values but detaches the solver call from
// the caller's cancellation.
func solverContext(c echo.Context) context.Context {
	return context.WithoutCancel(c.Request().Context())
}

func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get(echo.HeaderContentType))
	return err == nil && mediaType == echo.MIMEApplicationJSON
}

func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
