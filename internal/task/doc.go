// Package task defines the task record model, the persisted collection
// format, and validation.
//
// The tasks file (tasks.json) holds a single JSON array of task objects:
//
//	[
//	  {
//	    "id": 1,
//	    "description": "Buy groceries",
//	    "status": "todo",
//	    "createdAt": "2026-08-25T14:03:05",
//	    "updatedAt": "2026-08-25T14:03:05"
//	  }
//	]
//
// # Task Status Values
//
//   - "todo": Task is pending
//   - "in-progress": Task is currently being worked on
//   - "done": Task is complete
//
// Transitions between statuses are unrestricted; a done task can move
// back to todo.
//
// # Decoding
//
// DecodeCollection is deliberately lenient at the element level: an
// array element that is not a well-formed task object is dropped, not
// an error. A document that is not a JSON array at all fails the
// decode. Validate applies the strict rules (JSON Schema when a schema
// file is present, minimal structural checks otherwise) and is what the
// doctor command runs.
//
// # File Format
//
// When writing tasks files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Insertion order (display sorting is the caller's concern)
//   - Timestamps as local ISO-8601 with second precision
package task
