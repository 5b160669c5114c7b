package http

import (
	"net/http"

	"github.com/tasksetu/tasksetu/internal/adapter/otel"
	"github.com/tasksetu/tasksetu/internal/adapter/ws"
	"github.com/tasksetu/tasksetu/internal/port/messagequeue"
	"github.com/tasksetu/tasksetu/internal/service"
)

// Handlers bundles the services exposed over HTTP.
type Handlers struct {
	Tasks    *service.TaskService
	Comments *service.CommentService
	Activity *service.ActivityService
	Auth     *service.AuthService
	Tenants  *service.TenantService
	Hub      *ws.Hub
	Queue    messagequeue.Queue
	Metrics  *otel.Metrics
}

// Health handles GET /health.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	status := http.StatusOK
	overall := "ok"
	queue := "connected"
	if h.Queue == nil || !h.Queue.IsConnected() {
		queue = "disconnected"
		overall = "degraded"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status":     overall,
		"queue":      queue,
		"ws_clients": h.Hub.ConnectionCount(),
		"service":    "tasksetu-core",
	})
}
