package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "tasksetu"

// Metrics holds all Tasksetu metric instruments.
type Metrics struct {
	TransitionsAccepted metric.Int64Counter
	TransitionsRejected metric.Int64Counter
	ProposalsCreated    metric.Int64Counter
	PermissionDenials   metric.Int64Counter
	CommentsAdded       metric.Int64Counter
}

// NewMetrics creates all metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.TransitionsAccepted, err = meter.Int64Counter("tasksetu.transitions.accepted",
		metric.WithDescription("Number of status transitions committed"))
	if err != nil {
		return nil, err
	}

	m.TransitionsRejected, err = meter.Int64Counter("tasksetu.transitions.rejected",
		metric.WithDescription("Number of status transitions rejected by validation"))
	if err != nil {
		return nil, err
	}

	m.ProposalsCreated, err = meter.Int64Counter("tasksetu.transitions.proposed",
		metric.WithDescription("Number of terminal transitions awaiting confirmation"))
	if err != nil {
		return nil, err
	}

	m.PermissionDenials, err = meter.Int64Counter("tasksetu.permission.denials",
		metric.WithDescription("Number of requests denied by capability checks"))
	if err != nil {
		return nil, err
	}

	m.CommentsAdded, err = meter.Int64Counter("tasksetu.comments.added",
		metric.WithDescription("Number of comments posted"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
