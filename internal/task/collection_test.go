package task

import (
	"strings"
	"testing"
	"time"
)

func sampleTasks() []Task {
	now := time.Date(2026, 8, 25, 9, 0, 0, 0, time.Local)
	a := New(2, "Second", now)
	b := New(1, "First", now)
	c := New(3, "Third", now)
	b.Status = StatusDone
	return []Task{a, b, c}
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name  string
		tasks []Task
		want  int
	}{
		{"empty collection", nil, 1},
		{"sequential ids", []Task{{ID: 1}, {ID: 2}}, 3},
		{"gap from deletion is not filled", []Task{{ID: 2}, {ID: 5}}, 6},
		{"unsorted storage order", []Task{{ID: 9}, {ID: 3}}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextID(tt.tasks); got != tt.want {
				t.Errorf("NextID: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFindAndRemove(t *testing.T) {
	tasks := sampleTasks()

	if found := Find(tasks, 3); found == nil || found.Description != "Third" {
		t.Errorf("Find(3): got %+v", found)
	}
	if found := Find(tasks, 99); found != nil {
		t.Errorf("Find(99): expected nil, got %+v", found)
	}

	remaining, removed := Remove(tasks, 1)
	if !removed {
		t.Fatal("Remove(1): expected removal")
	}
	if len(remaining) != 2 {
		t.Fatalf("Remove(1): got %d tasks, want 2", len(remaining))
	}
	if Find(remaining, 1) != nil {
		t.Error("Remove(1): task 1 still present")
	}

	if _, removed := Remove(remaining, 99); removed {
		t.Error("Remove(99): reported removal of missing task")
	}
}

func TestSortByIDAndFilter(t *testing.T) {
	tasks := sampleTasks()

	SortByID(tasks)
	for i, want := range []int{1, 2, 3} {
		if tasks[i].ID != want {
			t.Errorf("sorted[%d].ID: got %d, want %d", i, tasks[i].ID, want)
		}
	}

	done := FilterByStatus(tasks, StatusDone)
	if len(done) != 1 || done[0].ID != 1 {
		t.Errorf("FilterByStatus(done): got %+v", done)
	}
	if got := FilterByStatus(tasks, StatusInProgress); len(got) != 0 {
		t.Errorf("FilterByStatus(in-progress): got %+v, want empty", got)
	}
}

func TestDecodeCollectionSkipsMalformedElements(t *testing.T) {
	doc := `[
  {"id": 1, "description": "Keep me", "status": "todo",
   "createdAt": "2026-08-25T09:00:00", "updatedAt": "2026-08-25T09:00:00"},
  "not a task",
  42,
  null,
  [1, 2],
  {"id": "NaN", "description": "bad id type", "status": "todo"},
  {"id": 2, "description": "Also keep me", "status": "done",
   "createdAt": "2026-08-25T09:00:00", "updatedAt": "2026-08-25T10:00:00"}
]`

	tasks, skipped, err := DecodeCollection([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeCollection failed: %v", err)
	}
	if skipped != 5 {
		t.Errorf("skipped: got %d, want 5", skipped)
	}
	if len(tasks) != 2 {
		t.Fatalf("tasks: got %d, want 2", len(tasks))
	}
	if tasks[0].ID != 1 || tasks[1].ID != 2 {
		t.Errorf("kept wrong tasks: %+v", tasks)
	}
}

func TestDecodeCollectionRejectsMalformedDocument(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"invalid json", `{not json`},
		{"top-level object", `{"tasks": []}`},
		{"top-level string", `"hello"`},
		{"empty document", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := DecodeCollection([]byte(tt.doc)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestEncodeCollection(t *testing.T) {
	data, err := EncodeCollection(nil)
	if err != nil {
		t.Fatalf("EncodeCollection(nil) failed: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("nil collection: got %q, want %q", data, "[]\n")
	}

	tasks := sampleTasks()
	data, err = EncodeCollection(tasks)
	if err != nil {
		t.Fatalf("EncodeCollection failed: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("missing trailing newline")
	}

	// Storage order is insertion order, not id order.
	decoded, skipped, err := DecodeCollection(data)
	if err != nil || skipped != 0 {
		t.Fatalf("round trip failed: skipped=%d err=%v", skipped, err)
	}
	for i := range tasks {
		if decoded[i].ID != tasks[i].ID {
			t.Errorf("order changed at %d: got id %d, want %d", i, decoded[i].ID, tasks[i].ID)
		}
		if !decoded[i].UpdatedAt.Equal(tasks[i].UpdatedAt.Time) {
			t.Errorf("timestamp changed at %d: got %v, want %v", i, decoded[i].UpdatedAt, tasks[i].UpdatedAt)
		}
	}
}
