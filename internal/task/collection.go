package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// NextID returns 1 + the highest id in tasks. It is derived fresh from
// the collection each time, so gaps left by deletions are never filled.
func NextID(tasks []Task) int {
	maxID := 0
	for _, t := range tasks {
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	return maxID + 1
}

// Find returns a pointer to the task with the given id, or nil if not
// found.
func Find(tasks []Task, id int) *Task {
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i]
		}
	}
	return nil
}

// Remove returns the collection without the task matching id. The
// second return value reports whether a task was removed. IDs are
// unique, so at most one task can match.
func Remove(tasks []Task, id int) ([]Task, bool) {
	for i := range tasks {
		if tasks[i].ID == id {
			return append(tasks[:i:i], tasks[i+1:]...), true
		}
	}
	return tasks, false
}

// SortByID sorts tasks ascending by id, in place. Storage order is
// insertion order; display order is id order.
func SortByID(tasks []Task) {
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].ID < tasks[j].ID
	})
}

// FilterByStatus returns the tasks matching the given status.
func FilterByStatus(tasks []Task, status Status) []Task {
	filtered := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// DecodeCollection decodes a persisted task document. The document
// must be a JSON array; anything else fails the decode. Elements that
// are not well-formed task objects are dropped rather than failing the
// whole document. Returns the tasks and the number of dropped elements.
func DecodeCollection(data []byte) ([]Task, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("parse task collection: %w", err)
	}

	tasks := make([]Task, 0, len(raw))
	skipped := 0
	for _, elem := range raw {
		trimmed := bytes.TrimSpace(elem)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			skipped++
			continue
		}
		var t Task
		if err := json.Unmarshal(elem, &t); err != nil {
			skipped++
			continue
		}
		tasks = append(tasks, t)
	}

	return tasks, skipped, nil
}

// EncodeCollection serializes the full collection with 2-space
// indentation and a trailing newline. A nil collection encodes as an
// empty array, never as null.
func EncodeCollection(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task collection: %w", err)
	}
	return append(data, '\n'), nil
}
