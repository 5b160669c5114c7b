package task

import "fmt"

// transitions is the legal status graph. Statuses absent from a source's
// target set are unreachable from it; terminal statuses have no entry.
var transitions = map[Status][]Status{
	StatusOpen:       {StatusInProgress, StatusOnHold, StatusCancelled},
	StatusInProgress: {StatusOnHold, StatusDone, StatusCancelled},
	StatusOnHold:     {StatusInProgress, StatusCancelled},
	StatusDone:       {},
	StatusCancelled:  {},
}

// Terminal reports whether the status has no outgoing transitions.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusCancelled
}

// AllowedTargets returns the statuses reachable from s.
func AllowedTargets(s Status) []Status {
	targets := transitions[s]
	out := make([]Status, len(targets))
	copy(out, targets)
	return out
}

// CanTransition reports whether the graph permits moving from source to target.
func CanTransition(from, to Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// InvalidTransitionError reports a target status not reachable from the
// current status. Recoverable: the caller picks a valid target.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// IncompleteSubtasksError reports a completion blocked by unresolved
// subtasks. Blocking is the count of subtasks not yet DONE or CANCELLED.
type IncompleteSubtasksError struct {
	Blocking int
}

func (e *IncompleteSubtasksError) Error() string {
	return fmt.Sprintf("cannot complete task: %d subtask(s) not yet resolved", e.Blocking)
}

// CheckTransition validates a requested status change against the graph and
// the subtask completion gate. It performs no I/O.
func CheckTransition(t *Task, target Status) error {
	if !ValidStatuses[target] {
		return &InvalidTransitionError{From: t.Status, To: target}
	}
	if !CanTransition(t.Status, target) {
		return &InvalidTransitionError{From: t.Status, To: target}
	}
	if target == StatusDone {
		if blocking := t.BlockingSubtasks(); blocking > 0 {
			return &IncompleteSubtasksError{Blocking: blocking}
		}
	}
	return nil
}
