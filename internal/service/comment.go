package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tasksetu/tasksetu/internal/adapter/ws"
	"github.com/tasksetu/tasksetu/internal/domain"
	"github.com/tasksetu/tasksetu/internal/domain/activity"
	"github.com/tasksetu/tasksetu/internal/domain/comment"
	"github.com/tasksetu/tasksetu/internal/domain/identity"
	"github.com/tasksetu/tasksetu/internal/domain/user"
	"github.com/tasksetu/tasksetu/internal/port/broadcast"
	"github.com/tasksetu/tasksetu/internal/port/database"
	"github.com/tasksetu/tasksetu/internal/port/messagequeue"
)

// CommentService handles task comments. Every mutation is gated by the
// actor's capability set on the parent task, resolved fresh per call.
type CommentService struct {
	store    database.Store
	queue    messagequeue.Queue
	hub      broadcast.Broadcaster
	tasks    *TaskService
	activity *ActivityService
}

// NewCommentService creates a new CommentService.
func NewCommentService(store database.Store, queue messagequeue.Queue, hub broadcast.Broadcaster, tasks *TaskService, act *ActivityService) *CommentService {
	return &CommentService{store: store, queue: queue, hub: hub, tasks: tasks, activity: act}
}

// List returns all comments on a task, oldest first. Requires view access.
func (s *CommentService) List(ctx context.Context, taskID string, actor *user.User) ([]comment.Comment, error) {
	caps, err := s.tasks.Permissions(ctx, taskID, actor)
	if err != nil {
		return nil, err
	}
	if !caps.CanView {
		return nil, domain.ErrPermissionDenied
	}
	return s.store.ListComments(ctx, taskID)
}

// Add posts a comment on a task. Attachments and mentions are stripped when
// the actor's capabilities do not cover them.
func (s *CommentService) Add(ctx context.Context, taskID string, req comment.CreateRequest, actor *user.User) (*comment.Comment, error) {
	caps, err := s.tasks.Permissions(ctx, taskID, actor)
	if err != nil {
		return nil, err
	}
	if !caps.CanAdd {
		s.tasks.denied(ctx, taskID, actor.ID, "comment_add")
		return nil, domain.ErrPermissionDenied
	}

	if len(req.Attachments) > 0 && !caps.CanAttachFiles {
		req.Attachments = nil
	}
	if len(req.Mentions) > 0 && !caps.CanMention {
		req.Mentions = nil
	}

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	c := &comment.Comment{
		ID:          generateID(),
		TaskID:      taskID,
		AuthorID:    identity.FromString(actor.ID),
		Body:        req.Body,
		Attachments: req.Attachments,
		Mentions:    req.Mentions,
	}

	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.activity.Record(ctx, activity.TypeCommentAdded, "comment added", actor.ID, taskID, nil)
	s.publishAdded(ctx, c)
	s.hub.BroadcastEvent(ctx, ws.EventCommentAdded, ws.CommentAddedEvent{
		CommentID: c.ID,
		TaskID:    taskID,
		AuthorID:  actor.ID,
	})

	return c, nil
}

// Edit updates a comment's body. Non-moderators may only edit their own.
func (s *CommentService) Edit(ctx context.Context, commentID string, req comment.UpdateRequest, actor *user.User) (*comment.Comment, error) {
	c, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	caps, err := s.tasks.Permissions(ctx, c.TaskID, actor)
	if err != nil {
		return nil, err
	}
	if !caps.CanEditComment(actor.ID, c.AuthorID) {
		s.tasks.denied(ctx, c.TaskID, actor.ID, "comment_edit")
		return nil, domain.ErrPermissionDenied
	}

	if req.Body == "" {
		return nil, fmt.Errorf("%w: comment body is required", domain.ErrValidation)
	}

	c.Body = req.Body
	c.Edited = true

	if err := s.store.UpdateComment(ctx, c); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}

	s.activity.Record(ctx, activity.TypeCommentEdited, "comment edited", actor.ID, c.TaskID, nil)
	return c, nil
}

// Delete removes a comment. Moderators may delete any comment; everyone else
// only their own, capability permitting.
func (s *CommentService) Delete(ctx context.Context, commentID string, actor *user.User) error {
	c, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return err
	}

	caps, err := s.tasks.Permissions(ctx, c.TaskID, actor)
	if err != nil {
		return err
	}
	if !caps.CanDeleteComment(actor.ID, c.AuthorID) {
		s.tasks.denied(ctx, c.TaskID, actor.ID, "comment_delete")
		return domain.ErrPermissionDenied
	}

	if err := s.store.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.activity.Record(ctx, activity.TypeCommentDeleted, "comment deleted", actor.ID, c.TaskID, nil)
	return nil
}

func (s *CommentService) publishAdded(ctx context.Context, c *comment.Comment) {
	payload := messagequeue.CommentAddedPayload{
		CommentID: c.ID,
		TaskID:    c.TaskID,
		AuthorID:  c.AuthorID.String(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal comment payload", "comment_id", c.ID, "error", err)
		return
	}

	if err := s.queue.Publish(ctx, messagequeue.SubjectCommentAdded, data); err != nil {
		slog.Warn("comment publish dropped", "comment_id", c.ID, "error", err)
	}
}
