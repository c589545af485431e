// Package client provides the outbound HTTP client for the solver service.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"solver-relay/internal/config"
	"solver-relay/internal/metrics"
	"solver-relay/internal/model"
)

// SolverClient sends requests to the downstream solver.
type SolverClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewSolverClient creates a SolverClient on a clone of the default transport.
// A zero solver.timeout_seconds leaves calls bounded only by the transport.
// The metrics parameter is optional; pass nil to disable solver metrics recording.
func NewSolverClient(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *SolverClient {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	return &SolverClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.Solver.TimeoutSeconds) * time.Second,
		},
		logger:  logger.With("component", "solver_client"),
		metrics: m,
	}
}

// Do executes sr against the solver and reads the whole response body.
// Any failure to send the request or read the body is returned as an error;
// a non-2xx status is not an error at this layer.
func (c *SolverClient) Do(ctx context.Context, sr *model.SolverRequest) (*model.SolverResponse, error) {
	var body io.Reader = http.NoBody
	if sr.Body != nil {
		body = bytes.NewReader(sr.Body)
	}

	req, err := http.NewRequestWithContext(ctx, sr.Method, sr.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build solver request: %w", err)
	}
	if sr.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sr.RequestID != "" {
		req.Header.Set("X-Request-Id", sr.RequestID)
	}

	c.logger.Debug("solver request",
		"method", sr.Method,
		"url", sr.URL,
		"bytes_out", len(sr.Body),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	method := metrics.NormalizeMethod(sr.Method)
	if err != nil {
		c.observe(method, "error", start)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	c.observe(method, strconv.Itoa(resp.StatusCode), start)
	if err != nil {
		return nil, fmt.Errorf("read solver response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	c.logger.Debug("solver response",
		"status", resp.StatusCode,
		"content_type", contentType,
		"bytes_in", len(data),
	)

	return &model.SolverResponse{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        data,
	}, nil
}

func (c *SolverClient) observe(method, status string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.SolverDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	c.metrics.SolverResponses.WithLabelValues(method, status).Inc()
}
