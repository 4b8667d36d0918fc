// Package service implements the user-facing task operations.
//
// Every operation follows the same shape: load the full collection,
// validate, apply a single mutation, save the full collection. The
// service never terminates the process; failures are returned as
// sentinel errors for the CLI layer to render.
package service

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasktrack-go/internal/store"
	"github.com/nibzard/tasktrack-go/internal/task"
)

// Service implements one operation per user-facing command.
type Service struct {
	store  *store.Store
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for operation diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source. Tests use this to observe
// updatedAt moving between operations.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a service backed by the given store.
func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store:  st,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseID parses an id token from the command line. Non-numeric and
// non-positive tokens fail with ErrInvalidID.
func ParseID(token string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(token))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%q: %w", token, ErrInvalidID)
	}
	return id, nil
}

// Add appends a new task with the next free id and returns it. The
// description is trimmed; a blank description fails with
// ErrEmptyDescription before anything is loaded or written.
func (s *Service) Add(description string) (task.Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return task.Task{}, ErrEmptyDescription
	}

	tasks, err := s.store.Load()
	if err != nil {
		return task.Task{}, err
	}

	created := task.New(task.NextID(tasks), description, s.now())
	tasks = append(tasks, created)
	if err := s.store.Save(tasks); err != nil {
		return task.Task{}, err
	}

	s.logger.Debug("task added", "id", created.ID)
	return created, nil
}

// Update replaces a task's description and refreshes updatedAt. The
// id, status, and createdAt are unchanged.
func (s *Service) Update(id int, description string) (task.Task, error) {
	if id <= 0 {
		return task.Task{}, ErrInvalidID
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return task.Task{}, ErrEmptyDescription
	}

	tasks, err := s.store.Load()
	if err != nil {
		return task.Task{}, err
	}

	t := task.Find(tasks, id)
	if t == nil {
		return task.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	t.Description = description
	t.Touch(s.now())

	if err := s.store.Save(tasks); err != nil {
		return task.Task{}, err
	}

	s.logger.Debug("task updated", "id", id)
	return *t, nil
}

// Delete removes the task with the given id. The id is never
// reassigned: Add always derives the next id from the current maximum.
func (s *Service) Delete(id int) error {
	if id <= 0 {
		return ErrInvalidID
	}

	tasks, err := s.store.Load()
	if err != nil {
		return err
	}

	remaining, removed := task.Remove(tasks, id)
	if !removed {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err := s.store.Save(remaining); err != nil {
		return err
	}

	s.logger.Debug("task deleted", "id", id)
	return nil
}

// SetStatus assigns a status and refreshes updatedAt. Transitions are
// unrestricted; any status may move to any other, including itself.
func (s *Service) SetStatus(id int, status task.Status) (task.Task, error) {
	if id <= 0 {
		return task.Task{}, ErrInvalidID
	}

	tasks, err := s.store.Load()
	if err != nil {
		return task.Task{}, err
	}

	t := task.Find(tasks, id)
	if t == nil {
		return task.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	t.Status = status
	t.Touch(s.now())

	if err := s.store.Save(tasks); err != nil {
		return task.Task{}, err
	}

	s.logger.Debug("task status set", "id", id, "status", status)
	return *t, nil
}

// List returns tasks sorted ascending by id. An empty filter returns
// all tasks; otherwise the filter must name a valid status or the call
// fails with ErrInvalidFilter. An empty result is not an error.
func (s *Service) List(filter string) ([]task.Task, error) {
	var status task.Status
	if strings.TrimSpace(filter) != "" {
		parsed, err := task.ParseStatus(filter)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", filter, ErrInvalidFilter)
		}
		status = parsed
	}

	tasks, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	if status != "" {
		tasks = task.FilterByStatus(tasks, status)
	}
	task.SortByID(tasks)
	return tasks, nil
}
