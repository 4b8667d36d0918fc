package task

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "description", "status", "createdAt", "updatedAt"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "description": {"type": "string", "minLength": 1},
      "status": {"enum": ["todo", "in-progress", "done"]},
      "createdAt": {"type": "string"},
      "updatedAt": {"type": "string"}
    }
  }
}`

func validTask(id int) Task {
	return New(id, "Something to do", time.Date(2026, 8, 25, 9, 0, 0, 0, time.Local))
}

func TestValidateMinimal(t *testing.T) {
	badTimes := validTask(1)
	badTimes.CreatedAt = NewTimestamp(time.Date(2026, 8, 25, 12, 0, 0, 0, time.Local))

	tests := []struct {
		name    string
		tasks   []Task
		wantErr bool
	}{
		{"empty collection", nil, false},
		{"valid tasks", []Task{validTask(1), validTask(2)}, false},
		{"zero id", []Task{{ID: 0, Description: "x", Status: StatusTodo}}, true},
		{"negative id", []Task{{ID: -3, Description: "x", Status: StatusTodo}}, true},
		{"blank description", []Task{{ID: 1, Description: "   ", Status: StatusTodo}}, true},
		{"invalid status", []Task{{ID: 1, Description: "x", Status: "blocked"}}, true},
		{"duplicate ids", []Task{validTask(1), validTask(1)}, true},
		{"updatedAt before createdAt", []Task{badTimes}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.tasks, ValidationOptions{})
			if result.Valid == tt.wantErr {
				t.Errorf("Validate() valid = %v, want error %v (errors: %v)",
					result.Valid, tt.wantErr, result.Errors)
			}
		})
	}
}

func TestValidateWithSchema(t *testing.T) {
	schemaPath := filepath.Join(t.TempDir(), "tasks.schema.json")
	if err := os.WriteFile(schemaPath, []byte(testSchema), 0644); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	result := Validate([]Task{validTask(1)}, ValidationOptions{SchemaPath: schemaPath})
	if !result.UsedSchema {
		t.Fatal("expected schema validation to run")
	}
	if !result.Valid {
		t.Errorf("valid tasks rejected: %v", result.Errors)
	}

	result = Validate([]Task{{ID: 1, Description: "x", Status: "blocked"}},
		ValidationOptions{SchemaPath: schemaPath})
	if result.Valid {
		t.Error("expected invalid status to fail schema validation")
	}
	if len(result.Errors) == 0 {
		t.Error("expected at least one validation error")
	}
}

func TestValidateMissingSchemaFallsBack(t *testing.T) {
	result := Validate([]Task{validTask(1)}, ValidationOptions{
		SchemaPath: filepath.Join(t.TempDir(), "nope.schema.json"),
	})
	if result.UsedSchema {
		t.Error("schema validation should not have run")
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning about the missing schema")
	}
	if !result.Valid {
		t.Errorf("minimal checks should pass: %v", result.Errors)
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"#/0/status", "[0].status"},
		{"/2/description", "[2].description"},
	}

	for _, tt := range tests {
		if got := jsonPointerToPath(tt.ptr); got != tt.want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", tt.ptr, got, tt.want)
		}
	}
}
