package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tasksetu/tasksetu/internal/domain"
	"github.com/tasksetu/tasksetu/internal/domain/identity"
	"github.com/tasksetu/tasksetu/internal/middleware"
)

// scannable abstracts pgx.Row and pgx.Rows for shared scan helpers.
type scannable interface {
	Scan(dest ...any) error
}

// tenantFromCtx extracts the tenant ID from the request context.
// All tenant-scoped queries must use this to enforce isolation.
func tenantFromCtx(ctx context.Context) string {
	return middleware.TenantIDFromContext(ctx)
}

// nullIfEmpty returns nil for empty strings (for nullable UUID columns).
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// refsToStrings flattens identity refs to their canonical ids for text[]
// columns. nil slices become empty arrays to avoid SQL NULL.
func refsToStrings(refs []identity.Ref) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if !r.IsZero() {
			out = append(out, r.String())
		}
	}
	return out
}

// stringsToRefs rebuilds identity refs from a scanned text[] column.
func stringsToRefs(ids []string) []identity.Ref {
	if len(ids) == 0 {
		return nil
	}
	out := make([]identity.Ref, len(ids))
	for i, id := range ids {
		out[i] = identity.FromString(id)
	}
	return out
}

// notFoundWrap checks whether err is pgx.ErrNoRows and, if so, wraps
// domain.ErrNotFound with the given message. Otherwise it wraps the
// original error.
func notFoundWrap(err error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", msg, domain.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// execExpectOne verifies that an Exec affected exactly one row. If not
// (and err is nil), it returns domain.ErrNotFound with the given message.
func execExpectOne(tag pgconn.CommandTag, err error, format string, args ...any) error {
	if err != nil {
		return fmt.Errorf(fmt.Sprintf(format, args...)+": %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf(fmt.Sprintf(format, args...)+": %w", domain.ErrNotFound)
	}
	return nil
}
