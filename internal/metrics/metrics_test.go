package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNew_GathersMetrics(t *testing.T) {
	m := New("/metrics")

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	// Should include at least Go runtime and process collectors.
	if len(families) == 0 {
		t.Fatal("expected non-empty metric families from Gather()")
	}

	m.RequestsTotal.WithLabelValues("GET", "200", "/solve/default").Inc()
	m.SolverResponses.WithLabelValues("GET", "200").Inc()

	families, err = m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	want := map[string]bool{
		"solver_relay_http_requests_total":    false,
		"solver_relay_solver_responses_total": false,
	}
	for _, f := range families {
		if _, ok := want[f.GetName()]; ok {
			want[f.GetName()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %s in gathered metrics", name)
		}
	}
}

func TestHandler_ExposesRegistry(t *testing.T) {
	m := New("/metrics")
	m.SolverDuration.WithLabelValues("POST").Observe(0.2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "solver_relay_solver_request_duration_seconds") {
		t.Error("expected solver duration histogram in exposition output")
	}
}

func TestNormalizeMethod(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{"GET", "GET"},
		{"POST", "POST"},
		{"PUT", "PUT"},
		{"DELETE", "DELETE"},
		{"PATCH", "PATCH"},
		{"HEAD", "HEAD"},
		{"OPTIONS", "OPTIONS"},
		{"FOOBAR", "other"},
		{"get", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			if got := NormalizeMethod(tt.method); got != tt.want {
				t.Errorf("NormalizeMethod(%q) = %q, want %q", tt.method, got, tt.want)
			}
		})
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		scrapePath string
		path       string
		want       string
	}{
		{"/metrics", "/", "/"},
		{"/metrics", "/solve", "/solve"},
		{"/metrics", "/solve/default", "/solve/default"},
		{"/metrics", "/solve/other", "/solve"},
		{"/metrics", "/healthz", "/healthz"},
		{"/metrics", "/metrics", "/metrics"},
		{"/metrics", "/unknown", "other"},
		{"/metrics", "/solver", "other"},
		{"/metrics", "", "other"},
		{"/custom-metrics", "/custom-metrics", "/custom-metrics"},
		{"/custom-metrics", "/metrics", "other"},
		{"/internal/prom", "/internal/prom", "/internal/prom"},
		{"", "/metrics", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.scrapePath+" "+tt.path, func(t *testing.T) {
			m := New(tt.scrapePath)
			if got := m.NormalizePath(tt.path); got != tt.want {
				t.Errorf("NormalizePath(%q) with scrape path %q = %q, want %q", tt.path, tt.scrapePath, got, tt.want)
			}
		})
	}
}
