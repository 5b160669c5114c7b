package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tasksetu/tasksetu/internal/adapter/ws"
	"github.com/tasksetu/tasksetu/internal/domain"
	"github.com/tasksetu/tasksetu/internal/domain/activity"
	"github.com/tasksetu/tasksetu/internal/domain/identity"
	"github.com/tasksetu/tasksetu/internal/domain/permission"
	"github.com/tasksetu/tasksetu/internal/domain/task"
	"github.com/tasksetu/tasksetu/internal/domain/tenant"
	"github.com/tasksetu/tasksetu/internal/domain/user"
	"github.com/tasksetu/tasksetu/internal/port/broadcast"
	"github.com/tasksetu/tasksetu/internal/port/cache"
	"github.com/tasksetu/tasksetu/internal/port/database"
	"github.com/tasksetu/tasksetu/internal/port/messagequeue"
)

// ErrProposalExpired is returned when a status-change confirmation arrives
// after the proposal's TTL has elapsed.
var ErrProposalExpired = errors.New("status change proposal has expired")

// ErrProposalNotFound is returned when a confirmation token does not match
// any pending proposal.
var ErrProposalNotFound = errors.New("status change proposal not found")

// PendingTransition is a proposed move into a terminal status awaiting
// explicit confirmation. The task is not mutated until the proposal is
// confirmed; an unconfirmed proposal simply expires.
type PendingTransition struct {
	Token     string      `json:"token"`
	TaskID    string      `json:"task_id"`
	From      task.Status `json:"from"`
	To        task.Status `json:"to"`
	ActorID   string      `json:"actor_id"`
	Warning   string      `json:"warning"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// TaskService handles task business logic, including the status transition
// flow and capability checks.
type TaskService struct {
	store    database.Store
	queue    messagequeue.Queue
	hub      broadcast.Broadcaster
	cache    cache.Cache
	activity *ActivityService
	cacheTTL time.Duration

	proposalTTL time.Duration
	mu          sync.Mutex
	pending     map[string]*PendingTransition
	now         func() time.Time // for testing
}

// NewTaskService creates a new TaskService.
func NewTaskService(store database.Store, queue messagequeue.Queue, hub broadcast.Broadcaster, c cache.Cache, act *ActivityService, cacheTTL, proposalTTL time.Duration) *TaskService {
	return &TaskService{
		store:       store,
		queue:       queue,
		hub:         hub,
		cache:       c,
		activity:    act,
		cacheTTL:    cacheTTL,
		proposalTTL: proposalTTL,
		pending:     make(map[string]*PendingTransition),
		now:         time.Now,
	}
}

// List returns all tasks in the tenant scoped by ctx.
func (s *TaskService) List(ctx context.Context) ([]task.Task, error) {
	return s.store.ListTasks(ctx)
}

// Get returns a task by ID with its subtasks loaded. Reads go through the
// in-process cache; writes invalidate it.
func (s *TaskService) Get(ctx context.Context, id string) (*task.Task, error) {
	if data, ok, err := s.cache.Get(ctx, taskCacheKey(ctx, id)); err == nil && ok {
		var t task.Task
		if err := json.Unmarshal(data, &t); err == nil {
			return &t, nil
		}
	}

	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(t); err == nil {
		if err := s.cache.Set(ctx, taskCacheKey(ctx, id), data, s.cacheTTL); err != nil {
			slog.Debug("task cache set failed", "task_id", id, "error", err)
		}
	}
	return t, nil
}

// Create creates a task in OPEN status and records the creator's identity
// and role so later permission checks do not need a user lookup.
func (s *TaskService) Create(ctx context.Context, req task.CreateRequest, actor *user.User) (*task.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.ParentID != "" {
		parent, err := s.store.GetTask(ctx, req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("get parent task: %w", err)
		}
		if parent.IsSubtask() {
			return nil, fmt.Errorf("%w: subtasks cannot have subtasks of their own", domain.ErrValidation)
		}
		if parent.Status.Terminal() {
			return nil, fmt.Errorf("%w: cannot add subtasks to a %s task", domain.ErrValidation, parent.Status)
		}
	}

	t := &task.Task{
		ID:            generateID(),
		Title:         req.Title,
		Description:   req.Description,
		Status:        task.StatusOpen,
		AssigneeID:    req.AssigneeID,
		AssigneeRole:  s.lookupRole(ctx, req.AssigneeID),
		CreatorID:     identity.FromString(actor.ID),
		CreatorRole:   actor.Role,
		Collaborators: req.Collaborators,
		Contributors:  req.Contributors,
		ParentID:      req.ParentID,
		Version:       1,
	}

	if err := s.store.CreateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.invalidate(ctx, t.ParentID)
	s.activity.Record(ctx, activity.TypeTaskCreated,
		fmt.Sprintf("task %q created", t.Title), actor.ID, t.ID, nil)

	return t, nil
}

// Update modifies task fields other than status. Status changes go through
// RequestStatusChange exclusively.
func (s *TaskService) Update(ctx context.Context, id string, req task.UpdateRequest, actor *user.User) (*task.Task, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	caps := permission.Resolve(actor, t)
	if !caps.CanEdit {
		s.denied(ctx, t.ID, actor.ID, "edit")
		return nil, domain.ErrPermissionDenied
	}

	if req.Title != "" {
		t.Title = req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.AssigneeID != nil {
		t.AssigneeID = *req.AssigneeID
		t.AssigneeRole = s.lookupRole(ctx, *req.AssigneeID)
	}
	if req.Collaborators != nil {
		t.Collaborators = *req.Collaborators
	}
	if req.Contributors != nil {
		t.Contributors = *req.Contributors
	}

	if err := s.store.UpdateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.invalidate(ctx, t.ID)
	return t, nil
}

// Delete removes a task. Deletion is a moderation-level action.
func (s *TaskService) Delete(ctx context.Context, id string, actor *user.User) error {
	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	caps := permission.Resolve(actor, t)
	if !caps.CanModerate {
		s.denied(ctx, t.ID, actor.ID, "delete")
		return domain.ErrPermissionDenied
	}

	if err := s.store.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	s.invalidate(ctx, id)
	s.invalidate(ctx, t.ParentID)
	return nil
}

// Permissions returns the capability set the actor holds on a task.
func (s *TaskService) Permissions(ctx context.Context, taskID string, actor *user.User) (permission.Capabilities, error) {
	t, err := s.load(ctx, taskID)
	if err != nil {
		return permission.Capabilities{}, err
	}
	return permission.Resolve(actor, t), nil
}

// RequestStatusChange validates and applies a status change. Checks run in a
// fixed order: capability first, then the transition graph, then the subtask
// completion gate. A request targeting a terminal status is not applied
// immediately; instead a PendingTransition is returned and the change only
// takes effect once confirmed. Exactly one of the task and the proposal is
// non-nil on success.
func (s *TaskService) RequestStatusChange(ctx context.Context, taskID string, target task.Status, actor *user.User) (*task.Task, *PendingTransition, error) {
	t, err := s.load(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.authorizeTransition(ctx, t, actor); err != nil {
		return nil, nil, err
	}
	if err := task.CheckTransition(t, target); err != nil {
		return nil, nil, err
	}

	if target.Terminal() {
		p := s.propose(t, target, actor)
		s.hub.BroadcastEvent(ctx, ws.EventTaskPending, ws.TaskPendingEvent{
			TaskID:  t.ID,
			Target:  string(target),
			Warning: p.Warning,
		})
		return nil, p, nil
	}

	updated, err := s.commitStatus(ctx, t, target, actor)
	if err != nil {
		return nil, nil, err
	}
	return updated, nil, nil
}

// ConfirmStatusChange applies a previously proposed terminal transition. The
// task state may have moved since the proposal was created, so every check
// runs again against fresh state before the change is committed.
func (s *TaskService) ConfirmStatusChange(ctx context.Context, token string, actor *user.User) (*task.Task, error) {
	p, err := s.takeProposal(token)
	if err != nil {
		return nil, err
	}

	if !identity.FromString(p.ActorID).EqualString(actor.ID) {
		return nil, domain.ErrPermissionDenied
	}

	t, err := s.load(ctx, p.TaskID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTransition(ctx, t, actor); err != nil {
		return nil, err
	}
	if err := task.CheckTransition(t, p.To); err != nil {
		return nil, err
	}

	return s.commitStatus(ctx, t, p.To, actor)
}

// AbandonStatusChange discards a pending proposal. Reports whether a live
// proposal existed for the token.
func (s *TaskService) AbandonStatusChange(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[token]
	if !ok {
		return false
	}
	delete(s.pending, token)
	return !s.now().After(p.ExpiresAt)
}

// --- internals ---

// load fetches a task and populates its subtasks so the completion gate sees
// current subtask state.
func (s *TaskService) load(ctx context.Context, id string) (*task.Task, error) {
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsSubtask() {
		subs, err := s.store.ListSubtasks(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("list subtasks: %w", err)
		}
		t.Subtasks = subs
	}
	return t, nil
}

// authorizeTransition enforces the capability check that precedes all
// transition validation. Capability failures win over transition failures.
func (s *TaskService) authorizeTransition(ctx context.Context, t *task.Task, actor *user.User) error {
	caps := permission.Resolve(actor, t)
	if !caps.CanEdit {
		s.denied(ctx, t.ID, actorIDOf(actor), "status_change")
		return domain.ErrPermissionDenied
	}
	return nil
}

// propose registers a pending terminal transition with a TTL. Expired
// proposals are swept opportunistically.
func (s *TaskService) propose(t *task.Task, target task.Status, actor *user.User) *PendingTransition {
	p := &PendingTransition{
		Token:     generateID(),
		TaskID:    t.ID,
		From:      t.Status,
		To:        target,
		ActorID:   actor.ID,
		Warning:   terminalWarning(target),
		ExpiresAt: s.now().Add(s.proposalTTL),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for token, old := range s.pending {
		if s.now().After(old.ExpiresAt) {
			delete(s.pending, token)
		}
	}
	s.pending[p.Token] = p
	return p
}

// takeProposal removes and returns the proposal for token, enforcing expiry.
func (s *TaskService) takeProposal(token string) (*PendingTransition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[token]
	if !ok {
		return nil, ErrProposalNotFound
	}
	delete(s.pending, token)

	if s.now().After(p.ExpiresAt) {
		return nil, ErrProposalExpired
	}
	return p, nil
}

// commitStatus persists the status change and emits the downstream events.
// On a write failure nothing is mutated in memory and no events fire.
func (s *TaskService) commitStatus(ctx context.Context, t *task.Task, target task.Status, actor *user.User) (*task.Task, error) {
	if err := s.store.UpdateTaskStatus(ctx, t.ID, target); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}

	previous := t.Status
	updated := *t
	updated.Status = target
	updated.Version++
	updated.UpdatedAt = s.now()

	s.invalidate(ctx, t.ID)
	s.invalidate(ctx, t.ParentID)

	actorID := actorIDOf(actor)
	s.activity.Record(ctx, activity.TypeStatusChanged,
		fmt.Sprintf("status changed from %s to %s", previous, target),
		actorID, t.ID, map[string]string{
			"previous_status": string(previous),
			"new_status":      string(target),
		})

	s.publishStatusChange(ctx, t.ID, previous, target, actorID)

	s.hub.BroadcastEvent(ctx, ws.EventTaskStatus, ws.TaskStatusEvent{
		TaskID:         t.ID,
		PreviousStatus: string(previous),
		Status:         string(target),
		ActorID:        actorID,
	})

	return &updated, nil
}

func (s *TaskService) publishStatusChange(ctx context.Context, taskID string, from, to task.Status, actorID string) {
	payload := messagequeue.StatusChangedPayload{
		TaskID:         taskID,
		PreviousStatus: string(from),
		NewStatus:      string(to),
		ActorID:        actorID,
		Timestamp:      s.now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal status payload", "task_id", taskID, "error", err)
		return
	}

	if err := s.queue.Publish(ctx, messagequeue.SubjectTaskStatus, data); err != nil {
		slog.Warn("status publish dropped", "task_id", taskID, "error", err)
	}
}

// lookupRole resolves the role of a referenced user, if the reference points
// at a known user. An unresolvable reference leaves the role unset.
func (s *TaskService) lookupRole(ctx context.Context, ref identity.Ref) user.Role {
	if ref.IsZero() {
		return ""
	}
	u, err := s.store.GetUser(ctx, ref.String())
	if err != nil {
		return ""
	}
	return u.Role
}

func (s *TaskService) denied(ctx context.Context, taskID, actorID, action string) {
	s.hub.BroadcastEvent(ctx, ws.EventCapabilityDenied, ws.CapabilityDeniedEvent{
		TaskID:  taskID,
		ActorID: actorID,
		Action:  action,
	})
}

func (s *TaskService) invalidate(ctx context.Context, id string) {
	if id == "" {
		return
	}
	if err := s.cache.Delete(ctx, taskCacheKey(ctx, id)); err != nil {
		slog.Debug("task cache invalidate failed", "task_id", id, "error", err)
	}
}

// taskCacheKey scopes cache entries by tenant. The SQL layer enforces tenant
// isolation per query; cached reads must not widen that boundary.
func taskCacheKey(ctx context.Context, id string) string {
	return "task:" + tenant.FromContext(ctx) + ":" + id
}

func actorIDOf(u *user.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}

// terminalWarning is the confirmation prompt shown before a task enters a
// terminal status.
func terminalWarning(target task.Status) string {
	if target == task.StatusCancelled {
		return "Cancelling this task is permanent and cannot be undone. Confirm to proceed."
	}
	return "Marking this task as done is permanent and cannot be undone. Confirm to proceed."
}
