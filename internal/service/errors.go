package service

import "fmt"

// TransportError is returned when the solver could not be reached or its
// response could not be read or parsed.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("call solver %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Details describes the underlying failure without the relay's own prefix.
func (e *TransportError) Details() string {
	if e.Err == nil {
		return "unknown error"
	}
	return e.Err.Error()
}

// DownstreamError is returned when the solver answered with a non-2xx status.
type DownstreamError struct {
	StatusCode int
	Body       string
}

func (e *DownstreamError) Error() string {
	return fmt.Sprintf("solver returned status %d", e.StatusCode)
}
