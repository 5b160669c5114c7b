package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tasksetu/tasksetu/internal/domain/user"
	"github.com/tasksetu/tasksetu/internal/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireRole_AdminAllowed(t *testing.T) {
	// Auth disabled injects a super-admin user.
	handler := middleware.Auth(nil, false)(
		middleware.RequireRole(user.RoleSuperAdmin, user.RoleOrgAdmin)(okHandler()),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orgs", http.NoBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestRequireRole_NoUser_Returns401(t *testing.T) {
	// No auth middleware, so no user in context.
	handler := middleware.RequireRole(user.RoleOrgAdmin)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orgs", http.NoBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRole_WrongRole_Returns403(t *testing.T) {
	employee := &user.User{
		ID:       "emp-1",
		Email:    "emp@test.com",
		Role:     user.RoleEmployee,
		TenantID: middleware.DefaultTenantID,
		Enabled:  true,
	}

	handler := middleware.RequireRole(user.RoleOrgAdmin)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orgs", http.NoBody)
	req = req.WithContext(middleware.WithUser(req.Context(), employee))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRole_LegacyAliasAllowed(t *testing.T) {
	// A stored legacy role spelling still matches its canonical requirement.
	legacyAdmin := &user.User{
		ID:       "legacy-1",
		Email:    "legacy@test.com",
		Role:     user.Role("company-admin"),
		TenantID: middleware.DefaultTenantID,
		Enabled:  true,
	}

	handler := middleware.RequireRole(user.RoleOrgAdmin)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orgs", http.NoBody)
	req = req.WithContext(middleware.WithUser(req.Context(), legacyAdmin))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
