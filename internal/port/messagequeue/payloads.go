package messagequeue

// StatusChangedPayload is the schema for tasks.status messages.
type StatusChangedPayload struct {
	TaskID         string `json:"task_id"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	ActorID        string `json:"actor_id"`
	Timestamp      string `json:"timestamp"`
}

// ActivityRecordedPayload is the schema for activity.recorded messages.
type ActivityRecordedPayload struct {
	RecordID    string            `json:"record_id"`
	Type        string            `json:"type"`
	Description string            `json:"description"`
	ActorID     string            `json:"actor_id"`
	TaskID      string            `json:"task_id"`
	Timestamp   string            `json:"timestamp"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// CommentAddedPayload is the schema for comments.added messages.
type CommentAddedPayload struct {
	CommentID string `json:"comment_id"`
	TaskID    string `json:"task_id"`
	AuthorID  string `json:"author_id"`
}
