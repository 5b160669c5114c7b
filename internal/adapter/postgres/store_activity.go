package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tasksetu/tasksetu/internal/domain/activity"
)

func (s *Store) AppendActivity(ctx context.Context, rec *activity.Record) error {
	metadata, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO activities (id, tenant_id, type, description, actor_id, task_id, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		rec.ID, tenantFromCtx(ctx), string(rec.Type), rec.Description,
		rec.ActorID, rec.TaskID, metadata)

	if err := row.Scan(&rec.CreatedAt); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}
	return nil
}

func (s *Store) ListActivityByTask(ctx context.Context, taskID string) ([]activity.Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, type, description, actor_id, task_id, metadata, created_at
		 FROM activities WHERE task_id = $1 AND tenant_id = $2 ORDER BY created_at DESC`,
		taskID, tenantFromCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var records []activity.Record
	for rows.Next() {
		var (
			rec      activity.Record
			typ      string
			metadata []byte
		)
		if err := rows.Scan(&rec.ID, &typ, &rec.Description, &rec.ActorID, &rec.TaskID,
			&metadata, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		rec.Type = activity.Type(typ)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &rec.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshal metadata: %w", err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
