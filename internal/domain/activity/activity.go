// Package activity defines the immutable audit record emitted for every
// accepted status transition and comment mutation.
package activity

import "time"

// Type identifies the kind of activity event.
type Type string

const (
	TypeStatusChanged  Type = "task.status_changed"
	TypeTaskCreated    Type = "task.created"
	TypeCommentAdded   Type = "comment.added"
	TypeCommentEdited  Type = "comment.edited"
	TypeCommentDeleted Type = "comment.deleted"
)

// Record is a single entry in a task's activity trail. Records are
// append-only; delivery to downstream consumers is best-effort.
type Record struct {
	ID          string            `json:"id"`
	TenantID    string            `json:"tenant_id,omitempty"`
	Type        Type              `json:"type"`
	Description string            `json:"description"`
	ActorID     string            `json:"actor_id"`
	TaskID      string            `json:"task_id"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
