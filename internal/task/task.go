package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the wire format for timestamps: local time, second
// precision, no fractional seconds, no zone suffix.
const TimeLayout = "2006-01-02T15:04:05"

// Status represents a task lifecycle stage.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// ParseStatus parses a user-supplied status token. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusTodo:
		return StatusTodo, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusDone:
		return StatusDone, nil
	default:
		return "", fmt.Errorf("invalid status %q, must be one of: %s, %s, %s",
			s, StatusTodo, StatusInProgress, StatusDone)
	}
}

// Timestamp wraps time.Time with the tasks-file wire encoding.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to second precision, matching what the wire
// format can represent.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.Truncate(time.Second)}
}

// MarshalJSON encodes the timestamp as a local ISO-8601 string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimeLayout))
}

// UnmarshalJSON decodes a timestamp. RFC 3339 strings are also
// accepted so hand-edited files with zone suffixes still load.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseInLocation(TimeLayout, s, time.Local)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("parse timestamp %q: %w", s, err)
		}
	}
	t.Time = parsed
	return nil
}

// Task represents a single task in the tracked collection.
type Task struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// New builds a record with the given id and description. New tasks
// always start as todo with matching created/updated timestamps.
func New(id int, description string, now time.Time) Task {
	ts := NewTimestamp(now)
	return Task{
		ID:          id,
		Description: description,
		Status:      StatusTodo,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
}

// Touch refreshes the updatedAt timestamp. ID and createdAt are never
// modified after creation.
func (t *Task) Touch(now time.Time) {
	t.UpdatedAt = NewTimestamp(now)
}
