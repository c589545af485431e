// Package service implements the relay semantics between callers and the solver.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"solver-relay/internal/client"
	"solver-relay/internal/config"
	"solver-relay/internal/model"
)

// emptyObject is sent to the solver when the inbound body is absent or unusable.
var emptyObject = []byte(`{}`)

// RelayService forwards solve requests to the configured solver URL and
// translates its responses.
type RelayService struct {
	client    *client.SolverClient
	solverURL string
	logger    *slog.Logger
}

// NewRelayService creates a RelayService bound to cfg.Solver.URL.
func NewRelayService(c *client.SolverClient, cfg *config.Config, logger *slog.Logger) *RelayService {
	return &RelayService{
		client:    c,
		solverURL: cfg.Solver.URL,
		logger:    logger.With("component", "relay_service"),
	}
}

// SolverURL returns the downstream URL every call is sent to.
func (s *RelayService) SolverURL() string {
	return s.solverURL
}

// SolveDefault asks the solver for its default run with a bodyless GET.
func (s *RelayService) SolveDefault(ctx context.Context, requestID string) (json.RawMessage, error) {
	return s.forward(ctx, &model.SolverRequest{
		Method:    http.MethodGet,
		URL:       s.solverURL,
		RequestID: requestID,
	})
}

// Solve POSTs body to the solver as JSON. Anything but a JSON object or array
// is sent as an empty object.
func (s *RelayService) Solve(ctx context.Context, requestID string, body []byte) (json.RawMessage, error) {
	return s.forward(ctx, &model.SolverRequest{
		Method:    http.MethodPost,
		URL:       s.solverURL,
		Body:      normalizeBody(body),
		RequestID: requestID,
	})
}

func (s *RelayService) forward(ctx context.Context, sr *model.SolverRequest) (json.RawMessage, error) {
	s.logger.Debug("forwarding to solver",
		"method", sr.Method,
		"request_id", sr.RequestID,
	)

	resp, err := s.client.Do(ctx, sr)
	if err != nil {
		return nil, &TransportError{URL: s.solverURL, Err: err}
	}

	if !resp.OK() {
		return nil, &DownstreamError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	return s.translate(resp)
}

// translate turns a 2xx solver response into the relay result. Bodies declared
// as JSON are passed through re-serialized; anything else is wrapped as
// {"raw": text}. A declared-JSON body that fails to parse is a TransportError.
func (s *RelayService) translate(resp *model.SolverResponse) (json.RawMessage, error) {
	if strings.Contains(resp.ContentType, "application/json") {
		var buf bytes.Buffer
		if err := json.Compact(&buf, resp.Body); err != nil {
			return nil, &TransportError{URL: s.solverURL, Err: fmt.Errorf("parse solver response: %w", err)}
		}
		return buf.Bytes(), nil
	}

	raw, err := json.Marshal(model.RawBody{Raw: string(resp.Body)})
	if err != nil {
		return nil, fmt.Errorf("wrap solver response: %w", err)
	}
	return raw, nil
}

// normalizeBody re-serializes a JSON object or array compactly and substitutes
// an empty object for anything else.
func normalizeBody(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return emptyObject
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return emptyObject
	}
	if first := buf.Bytes()[0]; first != '{' && first != '[' {
		return emptyObject
	}
	return buf.Bytes()
}
