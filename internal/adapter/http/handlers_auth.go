package http

import (
	"log/slog"
	"net/http"

	"github.com/tasksetu/tasksetu/internal/domain/user"
	"github.com/tasksetu/tasksetu/internal/middleware"
)

// Register handles POST /api/v1/auth/register. Privileged roles can only be
// assigned by an admin; self-registration always lands as employee.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.CreateRequest](w, r)
	if !ok {
		return
	}

	actor := middleware.UserFromContext(r.Context())
	if actor == nil || (actor.Role != user.RoleSuperAdmin && actor.Role != user.RoleOrgAdmin) {
		req.Role = string(user.RoleEmployee)
	}
	if req.TenantID == "" {
		req.TenantID = middleware.TenantIDFromContext(r.Context())
	}

	u, err := h.Auth.Register(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, "failed to register user")
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

// Login handles POST /api/v1/auth/login
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[user.LoginRequest](w, r)
	if !ok {
		return
	}

	tenantID := middleware.TenantIDFromContext(r.Context())
	resp, err := h.Auth.Login(r.Context(), req, tenantID)
	if err != nil {
		slog.Debug("login failed", "email", req.Email, "error", err)
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Me handles GET /api/v1/auth/me
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	u := middleware.UserFromContext(r.Context())
	if u == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// ListUsers handles GET /api/v1/users
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Auth.ListUsers(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to list users")
		return
	}
	if users == nil {
		users = []user.User{}
	}
	writeJSON(w, http.StatusOK, users)
}
