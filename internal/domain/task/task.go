// Package task defines the Task domain entity and its status lifecycle.
package task

import (
	"errors"
	"time"

	"github.com/tasksetu/tasksetu/internal/domain/identity"
	"github.com/tasksetu/tasksetu/internal/domain/user"
)

// Status represents the current state of a task.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "INPROGRESS"
	StatusOnHold     Status = "ONHOLD"
	StatusDone       Status = "DONE"
	StatusCancelled  Status = "CANCELLED"
)

// ValidStatuses is the set of all task statuses.
var ValidStatuses = map[Status]bool{
	StatusOpen:       true,
	StatusInProgress: true,
	StatusOnHold:     true,
	StatusDone:       true,
	StatusCancelled:  true,
}

// Task represents a unit of work assigned within an organization.
// Subtasks nest one level only: a task with ParentID never carries subtasks.
type Task struct {
	ID            string         `json:"id"`
	TenantID      string         `json:"tenant_id,omitempty"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Status        Status         `json:"status"`
	AssigneeID    identity.Ref   `json:"assignee_id"`
	AssigneeRole  user.Role      `json:"assignee_role,omitempty"`
	CreatorID     identity.Ref   `json:"creator_id"`
	CreatorRole   user.Role      `json:"creator_role,omitempty"`
	Collaborators []identity.Ref `json:"collaborators,omitempty"`
	Contributors  []identity.Ref `json:"contributors,omitempty"`
	ParentID      string         `json:"parent_id,omitempty"`
	Subtasks      []Task         `json:"subtasks,omitempty"`
	Version       int            `json:"version"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// IsSubtask reports whether the task is itself a subtask.
func (t *Task) IsSubtask() bool { return t.ParentID != "" }

// BlockingSubtasks returns the number of subtasks not yet resolved
// (neither DONE nor CANCELLED). A task may only complete when this is zero.
func (t *Task) BlockingSubtasks() int {
	n := 0
	for i := range t.Subtasks {
		if !t.Subtasks[i].Status.Terminal() {
			n++
		}
	}
	return n
}

// CreateRequest holds the fields needed to create a new task.
// New tasks always start in OPEN.
type CreateRequest struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	AssigneeID    identity.Ref   `json:"assignee_id"`
	Collaborators []identity.Ref `json:"collaborators"`
	Contributors  []identity.Ref `json:"contributors"`
	ParentID      string         `json:"parent_id"`
}

// Validate checks that the CreateRequest has all required fields.
func (r *CreateRequest) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

// UpdateRequest is the input for updating task fields other than status.
// Status changes go through the transition flow exclusively.
type UpdateRequest struct {
	Title         string          `json:"title,omitempty"`
	Description   *string         `json:"description,omitempty"`
	AssigneeID    *identity.Ref   `json:"assignee_id,omitempty"`
	Collaborators *[]identity.Ref `json:"collaborators,omitempty"`
	Contributors  *[]identity.Ref `json:"contributors,omitempty"`
}
