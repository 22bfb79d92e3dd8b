package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
)

func requestWithRole(roleID int) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	ctx := context.WithValue(req.Context(), RoleIDKey, roleID)
	return req.WithContext(ctx)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		req        *http.Request
		middleware func(http.Handler) http.Handler
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "admin allowed on admin route",
			req:        requestWithRole(entity.RoleIDAdmin),
			middleware: RequireAdmin,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "patient blocked on admin route",
			req:        requestWithRole(entity.RoleIDPatient),
			middleware: RequireAdmin,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "doctor allowed on shared route",
			req:        requestWithRole(entity.RoleIDDoctor),
			middleware: RequireDoctorOrPatient,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "patient allowed on shared route",
			req:        requestWithRole(entity.RoleIDPatient),
			middleware: RequireDoctorOrPatient,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "admin blocked on shared route",
			req:        requestWithRole(entity.RoleIDAdmin),
			middleware: RequireDoctorOrPatient,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing role rejected",
			req:        httptest.NewRequest(http.MethodGet, "/protected", nil),
			middleware: RequirePatient,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			tt.middleware(next).ServeHTTP(rec, tt.req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if nextCalled != tt.wantNext {
				t.Errorf("next called = %v, want %v", nextCalled, tt.wantNext)
			}
		})
	}
}

func TestContextGetters(t *testing.T) {
	req := requestWithRole(entity.RoleIDDoctor)

	roleID, ok := GetRoleIDFromContext(req.Context())
	if !ok || roleID != entity.RoleIDDoctor {
		t.Errorf("GetRoleIDFromContext() = %d, %v; want %d, true", roleID, ok, entity.RoleIDDoctor)
	}

	if _, ok := GetUserIDFromContext(req.Context()); ok {
		t.Error("expected no user ID in context")
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		query  string
		want   string
	}{
		{name: "bearer header", header: "Bearer abc123", want: "abc123"},
		{name: "malformed header", header: "abc123", want: ""},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
		{name: "query fallback", query: "tok456", want: "tok456"},
		{name: "header wins over query", header: "Bearer abc123", query: "tok456", want: "abc123"},
		{name: "nothing", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := "/ws"
			if tt.query != "" {
				url += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, url, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			if got := extractToken(req); got != tt.want {
				t.Errorf("extractToken() = %q, want %q", got, tt.want)
			}
		})
	}
}
