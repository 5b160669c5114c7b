package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/tasksetu/tasksetu/internal/adapter/otel"
	"github.com/tasksetu/tasksetu/internal/domain"
	"github.com/tasksetu/tasksetu/internal/domain/task"
	"github.com/tasksetu/tasksetu/internal/middleware"
)

// ListTasks handles GET /api/v1/tasks
func (h *Handlers) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Tasks.List(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

// GetTask handles GET /api/v1/tasks/{id}
func (h *Handlers) GetTask(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	t, err := h.Tasks.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// CreateTask handles POST /api/v1/tasks
func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[task.CreateRequest](w, r)
	if !ok {
		return
	}

	actor := middleware.UserFromContext(r.Context())
	t, err := h.Tasks.Create(r.Context(), req, actor)
	if err != nil {
		writeDomainError(w, err, "failed to create task")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// UpdateTask handles PUT /api/v1/tasks/{id}
func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	req, ok := readJSON[task.UpdateRequest](w, r)
	if !ok {
		return
	}

	actor := middleware.UserFromContext(r.Context())
	t, err := h.Tasks.Update(r.Context(), id, req, actor)
	if err != nil {
		writeDomainError(w, err, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// DeleteTask handles DELETE /api/v1/tasks/{id}
func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	actor := middleware.UserFromContext(r.Context())
	if err := h.Tasks.Delete(r.Context(), id, actor); err != nil {
		writeDomainError(w, err, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// CreateSubtask handles POST /api/v1/tasks/{id}/subtasks. Subtasks nest one
// level only; the service rejects a parent that is itself a subtask.
func (h *Handlers) CreateSubtask(w http.ResponseWriter, r *http.Request) {
	parentID := urlParam(r, "id")
	req, ok := readJSON[task.CreateRequest](w, r)
	if !ok {
		return
	}
	req.ParentID = parentID

	actor := middleware.UserFromContext(r.Context())
	t, err := h.Tasks.Create(r.Context(), req, actor)
	if err != nil {
		writeDomainError(w, err, "task not found")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

type statusChangeRequest struct {
	Status task.Status `json:"status"`
}

type confirmRequest struct {
	Token string `json:"token"`
}

type abandonRequest struct {
	Token string `json:"token"`
}

// ChangeTaskStatus handles POST /api/v1/tasks/{id}/status. A change to a
// terminal status is answered with 202 and a confirmation token instead of
// being applied immediately.
func (h *Handlers) ChangeTaskStatus(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	req, ok := readJSON[statusChangeRequest](w, r)
	if !ok {
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	actor := middleware.UserFromContext(r.Context())
	ctx, span := otel.StartTransitionSpan(r.Context(), id, "", string(req.Status))
	defer span.End()

	t, pending, err := h.Tasks.RequestStatusChange(ctx, id, req.Status, actor)
	if err != nil {
		h.countRejection(ctx, err)
		writeDomainError(w, err, "task not found")
		return
	}
	if pending != nil {
		h.Metrics.ProposalsCreated.Add(ctx, 1)
		writeJSON(w, http.StatusAccepted, pending)
		return
	}
	h.Metrics.TransitionsAccepted.Add(ctx, 1)
	writeJSON(w, http.StatusOK, t)
}

// ConfirmTaskStatus handles POST /api/v1/tasks/{id}/status/confirm. The token
// is single use; a second confirm with the same token returns 404.
func (h *Handlers) ConfirmTaskStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[confirmRequest](w, r)
	if !ok {
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	actor := middleware.UserFromContext(r.Context())
	t, err := h.Tasks.ConfirmStatusChange(r.Context(), req.Token, actor)
	if err != nil {
		h.countRejection(r.Context(), err)
		writeDomainError(w, err, "pending status change not found")
		return
	}
	h.Metrics.TransitionsAccepted.Add(r.Context(), 1)
	writeJSON(w, http.StatusOK, t)
}

// AbandonTaskStatus handles POST /api/v1/tasks/{id}/status/abandon.
func (h *Handlers) AbandonTaskStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[abandonRequest](w, r)
	if !ok {
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	if !h.Tasks.AbandonStatusChange(req.Token) {
		writeError(w, http.StatusNotFound, "pending status change not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "abandoned"})
}

// GetTaskPermissions handles GET /api/v1/tasks/{id}/permissions. It returns
// the capability set the authenticated user holds on the task.
func (h *Handlers) GetTaskPermissions(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	actor := middleware.UserFromContext(r.Context())

	actorID := ""
	if actor != nil {
		actorID = actor.ID
	}
	ctx, span := otel.StartResolveSpan(r.Context(), id, actorID)
	defer span.End()

	caps, err := h.Tasks.Permissions(ctx, id, actor)
	if err != nil {
		writeDomainError(w, err, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, caps)
}

// ListTaskActivity handles GET /api/v1/tasks/{id}/activity
func (h *Handlers) ListTaskActivity(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	if _, err := h.Tasks.Get(r.Context(), id); err != nil {
		writeDomainError(w, err, "task not found")
		return
	}

	records, err := h.Activity.ListByTask(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to list activity")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handlers) countRejection(ctx context.Context, err error) {
	if errors.Is(err, domain.ErrPermissionDenied) {
		h.Metrics.PermissionDenials.Add(ctx, 1)
		return
	}
	h.Metrics.TransitionsRejected.Add(ctx, 1)
}
