package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/tasksetu/tasksetu/internal/domain/user"
	"github.com/tasksetu/tasksetu/internal/middleware"
)

// MountRoutes registers all API routes on the given chi router. The caller
// wires the cross-cutting middleware (request id, tenant, auth, logging)
// before mounting. The request timeout covers the API group only; /ws
// handlers block for the life of the connection.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Get("/health", h.Health)
	r.Get("/ws", h.Hub.HandleWS)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))

		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"version":"0.1.0"}`))
		})

		// Auth
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Get("/auth/me", h.Me)

		// Users
		r.With(middleware.RequireRole(user.RoleSuperAdmin, user.RoleOrgAdmin, user.RoleManager)).
			Get("/users", h.ListUsers)

		// Tasks
		r.Get("/tasks", h.ListTasks)
		r.Post("/tasks", h.CreateTask)
		r.Get("/tasks/{id}", h.GetTask)
		r.Put("/tasks/{id}", h.UpdateTask)
		r.Delete("/tasks/{id}", h.DeleteTask)
		r.Post("/tasks/{id}/subtasks", h.CreateSubtask)

		// Status transitions
		r.Post("/tasks/{id}/status", h.ChangeTaskStatus)
		r.Post("/tasks/{id}/status/confirm", h.ConfirmTaskStatus)
		r.Post("/tasks/{id}/status/abandon", h.AbandonTaskStatus)

		// Permissions and audit trail
		r.Get("/tasks/{id}/permissions", h.GetTaskPermissions)
		r.Get("/tasks/{id}/activity", h.ListTaskActivity)

		// Comments
		r.Get("/tasks/{id}/comments", h.ListComments)
		r.Post("/tasks/{id}/comments", h.AddComment)
		r.Put("/comments/{id}", h.EditComment)
		r.Delete("/comments/{id}", h.DeleteComment)

		// Organizations
		r.Route("/orgs", func(r chi.Router) {
			r.Use(middleware.RequireRole(user.RoleSuperAdmin, user.RoleOrgAdmin))
			r.Get("/", h.ListOrganizations)
			r.Post("/", h.CreateOrganization)
			r.Get("/{id}", h.GetOrganization)
			r.Put("/{id}", h.UpdateOrganization)
		})
	})
}
