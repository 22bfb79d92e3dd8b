package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yashsaxena18/curesight-server/internal/delivery/http/middleware"
)

func newTestRouter() *Router {
	return NewRouter(
		nil, nil, nil, nil, nil, nil, nil, nil, nil,
		middleware.NewAuthMiddleware(nil, nil),
		middleware.NewCORSMiddleware(),
	)
}

func TestPreflightOnMethodRestrictedRoute(t *testing.T) {
	router := newTestRouter().Setup()

	// POST-only and GET-only paths must still answer a cross-origin
	// preflight with CORS headers instead of a bare 405.
	paths := []string{
		"/api/v1/auth/login",
		"/api/v1/appointments",
		"/api/v1/cancer/analyze",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, path, nil)
			req.Header.Set("Origin", "https://curesight.example")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
			}
		})
	}
}

func TestNonPreflightWrongMethodStays405(t *testing.T) {
	router := newTestRouter().Setup()

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/auth/login", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, "*")
	}
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter().Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if body := rec.Body.String(); body != `{"status": "ok"}` {
		t.Errorf("body = %q", body)
	}
}
