// Package model defines shared types for the relay.
package model

// Endpoints lists the relay routes advertised by the status endpoint.
var Endpoints = []string{"POST /solve", "GET /solve/default"}

// SolverRequest is a single outbound call to the solver.
// A nil Body means the call carries no body and no Content-Type.
type SolverRequest struct {
	Method    string
	URL       string
	Body      []byte
	RequestID string
}

// SolverResponse is the fully read solver response.
type SolverResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports whether the solver answered with a 2xx status.
func (r *SolverResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StatusResponse is the body of GET /.
type StatusResponse struct {
	Status    string   `json:"status"`
	SolverURL string   `json:"solverUrl"`
	Endpoints []string `json:"endpoints"`
}

// RawBody wraps a solver body that was not declared as JSON.
type RawBody struct {
	Raw string `json:"raw"`
}

// DownstreamErrorBody is returned when the solver answered with a non-2xx status.
type DownstreamErrorBody struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// TransportErrorBody is returned when the solver could not be called.
type TransportErrorBody struct {
	Error     string `json:"error"`
	SolverURL string `json:"solverUrl"`
	Details   string `json:"details"`
}
