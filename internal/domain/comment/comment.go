// Package comment defines the task comment domain entity.
package comment

import (
	"errors"
	"time"

	"github.com/tasksetu/tasksetu/internal/domain/identity"
)

// Comment is a single comment on a task. Attachments and mentions are
// stored as opaque references; upload mechanics live outside the core.
type Comment struct {
	ID          string         `json:"id"`
	TenantID    string         `json:"tenant_id,omitempty"`
	TaskID      string         `json:"task_id"`
	AuthorID    identity.Ref   `json:"author_id"`
	Body        string         `json:"body"`
	Attachments []string       `json:"attachments,omitempty"`
	Mentions    []identity.Ref `json:"mentions,omitempty"`
	Edited      bool           `json:"edited"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CreateRequest holds the fields needed to add a comment.
type CreateRequest struct {
	Body        string         `json:"body"`
	Attachments []string       `json:"attachments"`
	Mentions    []identity.Ref `json:"mentions"`
}

// Validate checks that the CreateRequest has all required fields.
func (r *CreateRequest) Validate() error {
	if r.Body == "" && len(r.Attachments) == 0 {
		return errors.New("comment body or attachment is required")
	}
	return nil
}

// UpdateRequest is the input for editing an existing comment.
type UpdateRequest struct {
	Body string `json:"body"`
}
