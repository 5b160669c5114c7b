package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasksetu/tasksetu/internal/domain"
	"github.com/tasksetu/tasksetu/internal/domain/identity"
	"github.com/tasksetu/tasksetu/internal/domain/task"
	"github.com/tasksetu/tasksetu/internal/domain/user"
)

// Store implements database.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a new Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const taskColumns = `id, title, description, status, assignee_id, assignee_role, creator_id, creator_role,
	 collaborators, contributors, parent_id, version, created_at, updated_at`

// --- Tasks ---

func (s *Store) ListTasks(ctx context.Context) ([]task.Task, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks WHERE tenant_id = $1 AND parent_id IS NULL ORDER BY created_at DESC`,
		tenantFromCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) GetTask(ctx context.Context, id string) (*task.Task, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks WHERE id = $1 AND tenant_id = $2`, id, tenantFromCtx(ctx))

	t, err := scanTask(row)
	if err != nil {
		return nil, notFoundWrap(err, "get task %s", id)
	}
	return &t, nil
}

func (s *Store) CreateTask(ctx context.Context, t *task.Task) error {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO tasks (id, tenant_id, title, description, status, assignee_id, assignee_role,
		                    creator_id, creator_role, collaborators, contributors, parent_id, version)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING created_at, updated_at`,
		t.ID, tenantFromCtx(ctx), t.Title, t.Description, t.Status,
		t.AssigneeID, string(t.AssigneeRole), t.CreatorID, string(t.CreatorRole),
		refsToStrings(t.Collaborators), refsToStrings(t.Contributors),
		nullIfEmpty(t.ParentID), t.Version)

	if err := row.Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	t.TenantID = tenantFromCtx(ctx)
	return nil
}

func (s *Store) UpdateTask(ctx context.Context, t *task.Task) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tasks SET title = $2, description = $3, assignee_id = $4, assignee_role = $5,
		        collaborators = $6, contributors = $7, version = version + 1, updated_at = now()
		 WHERE id = $1 AND version = $8 AND tenant_id = $9`,
		t.ID, t.Title, t.Description, t.AssigneeID, string(t.AssigneeRole),
		refsToStrings(t.Collaborators), refsToStrings(t.Contributors),
		t.Version, tenantFromCtx(ctx))
	if err != nil {
		return fmt.Errorf("update task %s: %w", t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update task %s: %w", t.ID, domain.ErrConflict)
	}
	t.Version++
	return nil
}

func (s *Store) UpdateTaskStatus(ctx context.Context, id string, status task.Status) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tasks SET status = $2, version = version + 1, updated_at = now()
		 WHERE id = $1 AND tenant_id = $3`,
		id, status, tenantFromCtx(ctx))
	return execExpectOne(tag, err, "update task status %s", id)
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND tenant_id = $2`, id, tenantFromCtx(ctx))
	return execExpectOne(tag, err, "delete task %s", id)
}

func (s *Store) ListSubtasks(ctx context.Context, parentID string) ([]task.Task, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+taskColumns+`
		 FROM tasks WHERE parent_id = $1 AND tenant_id = $2 ORDER BY created_at ASC`,
		parentID, tenantFromCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("list subtasks: %w", err)
	}
	defer rows.Close()

	var subs []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, t)
	}
	return subs, rows.Err()
}

func scanTask(row scannable) (task.Task, error) {
	var (
		t             task.Task
		assigneeID    *string
		assigneeRole  string
		creatorID     *string
		creatorRole   string
		collaborators []string
		contributors  []string
		parentID      *string
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &assigneeID, &assigneeRole,
		&creatorID, &creatorRole, &collaborators, &contributors, &parentID,
		&t.Version, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return task.Task{}, err
	}

	if assigneeID != nil {
		t.AssigneeID = identity.FromString(*assigneeID)
	}
	if creatorID != nil {
		t.CreatorID = identity.FromString(*creatorID)
	}
	t.AssigneeRole = user.Role(assigneeRole)
	t.CreatorRole = user.Role(creatorRole)
	t.Collaborators = stringsToRefs(collaborators)
	t.Contributors = stringsToRefs(contributors)
	if parentID != nil {
		t.ParentID = *parentID
	}
	return t, nil
}
