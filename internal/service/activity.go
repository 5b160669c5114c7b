package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/tasksetu/tasksetu/internal/domain/activity"
	"github.com/tasksetu/tasksetu/internal/port/database"
	"github.com/tasksetu/tasksetu/internal/port/messagequeue"
	"github.com/tasksetu/tasksetu/internal/resilience"
)

// ActivityService appends audit records and fans them out to downstream
// consumers. Persistence and delivery are best-effort: a failed record never
// blocks or reverts the operation that produced it, and each record is
// published at most once.
type ActivityService struct {
	store   database.Store
	queue   messagequeue.Queue
	breaker *resilience.Breaker
}

// NewActivityService creates a new activity service. The breaker guards the
// NATS publish path so a flapping broker does not slow down request handling.
func NewActivityService(store database.Store, queue messagequeue.Queue, breaker *resilience.Breaker) *ActivityService {
	return &ActivityService{store: store, queue: queue, breaker: breaker}
}

// Record appends an activity record and publishes it to the queue. Failures
// are logged and swallowed.
func (s *ActivityService) Record(ctx context.Context, typ activity.Type, description, actorID, taskID string, metadata map[string]string) {
	rec := &activity.Record{
		ID:          generateID(),
		Type:        typ,
		Description: description,
		ActorID:     actorID,
		TaskID:      taskID,
		Metadata:    metadata,
		CreatedAt:   time.Now(),
	}

	if err := s.store.AppendActivity(ctx, rec); err != nil {
		slog.Error("failed to append activity record", "type", typ, "task_id", taskID, "error", err)
	}

	s.publish(ctx, rec)
}

// ListByTask returns the activity trail for a task, newest first.
func (s *ActivityService) ListByTask(ctx context.Context, taskID string) ([]activity.Record, error) {
	return s.store.ListActivityByTask(ctx, taskID)
}

func (s *ActivityService) publish(ctx context.Context, rec *activity.Record) {
	payload := messagequeue.ActivityRecordedPayload{
		RecordID:    rec.ID,
		Type:        string(rec.Type),
		Description: rec.Description,
		ActorID:     rec.ActorID,
		TaskID:      rec.TaskID,
		Timestamp:   rec.CreatedAt.UTC().Format(time.RFC3339),
		Metadata:    rec.Metadata,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal activity payload", "record_id", rec.ID, "error", err)
		return
	}

	err = s.breaker.Execute(func() error {
		return s.queue.Publish(ctx, messagequeue.SubjectActivityRecorded, data)
	})
	if err != nil {
		slog.Warn("activity publish dropped", "record_id", rec.ID, "error", err)
	}
}
