// Package database defines the persistence port (interface).
package database

import (
	"context"

	"github.com/tasksetu/tasksetu/internal/domain/activity"
	"github.com/tasksetu/tasksetu/internal/domain/comment"
	"github.com/tasksetu/tasksetu/internal/domain/task"
	"github.com/tasksetu/tasksetu/internal/domain/tenant"
	"github.com/tasksetu/tasksetu/internal/domain/user"
)

// Store is the persistence interface consumed by the service layer.
// All methods are tenant-scoped through the request context.
type Store interface {
	// Tasks
	ListTasks(ctx context.Context) ([]task.Task, error)
	GetTask(ctx context.Context, id string) (*task.Task, error)
	CreateTask(ctx context.Context, t *task.Task) error
	UpdateTask(ctx context.Context, t *task.Task) error
	UpdateTaskStatus(ctx context.Context, id string, status task.Status) error
	DeleteTask(ctx context.Context, id string) error
	ListSubtasks(ctx context.Context, parentID string) ([]task.Task, error)

	// Comments
	ListComments(ctx context.Context, taskID string) ([]comment.Comment, error)
	GetComment(ctx context.Context, id string) (*comment.Comment, error)
	CreateComment(ctx context.Context, c *comment.Comment) error
	UpdateComment(ctx context.Context, c *comment.Comment) error
	DeleteComment(ctx context.Context, id string) error

	// Activity
	AppendActivity(ctx context.Context, rec *activity.Record) error
	ListActivityByTask(ctx context.Context, taskID string) ([]activity.Record, error)

	// Users
	GetUser(ctx context.Context, id string) (*user.User, error)
	GetUserByEmail(ctx context.Context, email, tenantID string) (*user.User, error)
	CreateUser(ctx context.Context, u *user.User) error
	ListUsers(ctx context.Context) ([]user.User, error)
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error

	// Organizations
	CreateOrganization(ctx context.Context, org *tenant.Organization) error
	GetOrganization(ctx context.Context, id string) (*tenant.Organization, error)
	ListOrganizations(ctx context.Context) ([]tenant.Organization, error)
	UpdateOrganization(ctx context.Context, org *tenant.Organization) error
}
