package http

import (
	"net/http"

	"github.com/tasksetu/tasksetu/internal/domain/comment"
	"github.com/tasksetu/tasksetu/internal/middleware"
)

// ListComments handles GET /api/v1/tasks/{id}/comments
func (h *Handlers) ListComments(w http.ResponseWriter, r *http.Request) {
	taskID := urlParam(r, "id")
	actor := middleware.UserFromContext(r.Context())

	comments, err := h.Comments.List(r.Context(), taskID, actor)
	if err != nil {
		writeDomainError(w, err, "task not found")
		return
	}
	if comments == nil {
		comments = []comment.Comment{}
	}
	writeJSON(w, http.StatusOK, comments)
}

// AddComment handles POST /api/v1/tasks/{id}/comments
func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	taskID := urlParam(r, "id")
	req, ok := readJSON[comment.CreateRequest](w, r)
	if !ok {
		return
	}

	actor := middleware.UserFromContext(r.Context())
	c, err := h.Comments.Add(r.Context(), taskID, req, actor)
	if err != nil {
		writeDomainError(w, err, "task not found")
		return
	}
	h.Metrics.CommentsAdded.Add(r.Context(), 1)
	writeJSON(w, http.StatusCreated, c)
}

// EditComment handles PUT /api/v1/comments/{id}
func (h *Handlers) EditComment(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	req, ok := readJSON[comment.UpdateRequest](w, r)
	if !ok {
		return
	}

	actor := middleware.UserFromContext(r.Context())
	c, err := h.Comments.Edit(r.Context(), id, req, actor)
	if err != nil {
		writeDomainError(w, err, "comment not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// DeleteComment handles DELETE /api/v1/comments/{id}
func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")
	actor := middleware.UserFromContext(r.Context())
	if err := h.Comments.Delete(r.Context(), id, actor); err != nil {
		writeDomainError(w, err, "comment not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
