package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func TestRegisterRoutes_Wiring(t *testing.T) {
	solver := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer solver.Close()

	relay := newTestRelayHandler(solver.URL)
	health := NewHealthHandler(solver.URL, "test")

	e := echo.New()
	RegisterRoutes(e, relay, health)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"GET /", http.MethodGet, "/", http.StatusOK},
		{"GET /healthz", http.MethodGet, "/healthz", http.StatusOK},
		{"GET /solve/default", http.MethodGet, "/solve/default", http.StatusOK},
		{"POST /solve", http.MethodPost, "/solve", http.StatusOK},
		{"GET /solve is not allowed", http.MethodGet, "/solve", http.StatusMethodNotAllowed},
		{"POST /solve/default is not allowed", http.MethodPost, "/solve/default", http.StatusMethodNotAllowed},
		{"GET /unknown returns 404", http.MethodGet, "/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestSolve_BodyLimit(t *testing.T) {
	calls := make(chan struct{}, 1)
	solver := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		calls <- struct{}{}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer solver.Close()

	e := echo.New()
	e.Use(echomw.BodyLimit("1M"))
	RegisterRoutes(e, newTestRelayHandler(solver.URL), NewHealthHandler(solver.URL, "test"))

	oversized := `{"pad":"` + strings.Repeat("a", 1024*1024) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(oversized))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
	select {
	case <-calls:
		t.Error("solver must not be called for an oversized body")
	default:
	}

	// Requests within the cap still reach the solver.
	req = httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(`{"a":1}`))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
