package postgres

import (
	"context"
	"fmt"

	"github.com/tasksetu/tasksetu/internal/domain/comment"
	"github.com/tasksetu/tasksetu/internal/domain/identity"
)

const commentColumns = `id, task_id, author_id, body, attachments, mentions, edited, created_at, updated_at`

func (s *Store) ListComments(ctx context.Context, taskID string) ([]comment.Comment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+commentColumns+`
		 FROM comments WHERE task_id = $1 AND tenant_id = $2 ORDER BY created_at ASC`,
		taskID, tenantFromCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []comment.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *Store) GetComment(ctx context.Context, id string) (*comment.Comment, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+commentColumns+`
		 FROM comments WHERE id = $1 AND tenant_id = $2`, id, tenantFromCtx(ctx))

	c, err := scanComment(row)
	if err != nil {
		return nil, notFoundWrap(err, "get comment %s", id)
	}
	return &c, nil
}

func (s *Store) CreateComment(ctx context.Context, c *comment.Comment) error {
	attachments := c.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO comments (id, tenant_id, task_id, author_id, body, attachments, mentions)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		c.ID, tenantFromCtx(ctx), c.TaskID, c.AuthorID, c.Body,
		attachments, refsToStrings(c.Mentions))

	if err := row.Scan(&c.CreatedAt, &c.UpdatedAt); err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (s *Store) UpdateComment(ctx context.Context, c *comment.Comment) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE comments SET body = $2, edited = true, updated_at = now()
		 WHERE id = $1 AND tenant_id = $3`,
		c.ID, c.Body, tenantFromCtx(ctx))
	return execExpectOne(tag, err, "update comment %s", c.ID)
}

func (s *Store) DeleteComment(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM comments WHERE id = $1 AND tenant_id = $2`, id, tenantFromCtx(ctx))
	return execExpectOne(tag, err, "delete comment %s", id)
}

func scanComment(row scannable) (comment.Comment, error) {
	var (
		c           comment.Comment
		authorID    *string
		attachments []string
		mentions    []string
	)
	err := row.Scan(&c.ID, &c.TaskID, &authorID, &c.Body, &attachments, &mentions,
		&c.Edited, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return comment.Comment{}, err
	}

	if authorID != nil {
		c.AuthorID = identity.FromString(*authorID)
	}
	c.Attachments = attachments
	c.Mentions = stringsToRefs(mentions)
	return c, nil
}
