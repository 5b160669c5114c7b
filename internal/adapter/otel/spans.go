package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "tasksetu"

// StartTransitionSpan starts a span for a status transition attempt.
func StartTransitionSpan(ctx context.Context, taskID, from, to string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "transition",
		trace.WithAttributes(
			attribute.String("task.id", taskID),
			attribute.String("transition.from", from),
			attribute.String("transition.to", to),
		),
	)
}

// StartResolveSpan starts a span for a permission resolution.
func StartResolveSpan(ctx context.Context, taskID, userID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "resolve_permissions",
		trace.WithAttributes(
			attribute.String("task.id", taskID),
			attribute.String("user.id", userID),
		),
	)
}
