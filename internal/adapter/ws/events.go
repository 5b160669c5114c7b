package ws

import (
	"context"
	"encoding/json"
	"log/slog"
)

// Event type constants for WebSocket messages.
const (
	EventTaskStatus       = "task.status"
	EventTaskPending      = "task.status_pending"
	EventCommentAdded     = "comment.added"
	EventCapabilityDenied = "capability.denied"
)

// TaskStatusEvent is broadcast when a task's status changes.
type TaskStatusEvent struct {
	TaskID         string `json:"task_id"`
	PreviousStatus string `json:"previous_status"`
	Status         string `json:"status"`
	ActorID        string `json:"actor_id,omitempty"`
}

// TaskPendingEvent is broadcast when a terminal status change awaits
// confirmation by the requesting user.
type TaskPendingEvent struct {
	TaskID  string `json:"task_id"`
	Target  string `json:"target"`
	Warning string `json:"warning"`
}

// CommentAddedEvent is broadcast when a comment is posted on a task.
type CommentAddedEvent struct {
	CommentID string `json:"comment_id"`
	TaskID    string `json:"task_id"`
	AuthorID  string `json:"author_id"`
}

// CapabilityDeniedEvent is broadcast when a user attempts an action their
// capability set does not permit.
type CapabilityDeniedEvent struct {
	TaskID  string `json:"task_id"`
	ActorID string `json:"actor_id"`
	Action  string `json:"action"`
}

// BroadcastEvent is a convenience method that marshals a typed event and broadcasts it.
func (h *Hub) BroadcastEvent(ctx context.Context, eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal ws event payload", "type", eventType, "error", err)
		return
	}

	h.Broadcast(ctx, Message{
		Type:    eventType,
		Payload: json.RawMessage(data),
	})
}
