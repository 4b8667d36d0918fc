// Package store persists the task collection as a single JSON document.
//
// Each command invocation loads the whole document, mutates the
// in-memory collection, and writes the whole document back. There is no
// partial write path and no in-process caching; the tool assumes no two
// invocations run concurrently.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasktrack-go/internal/task"
)

// ErrUnreadable reports a document that exists but cannot be decoded as
// a task collection. A malformed document is never silently repaired;
// the user has to fix it or delete it.
var ErrUnreadable = errors.New("tasks file is not a valid task collection")

// Store owns the on-disk task document.
type Store struct {
	Path   string
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a store for the document at path.
func New(path string, opts ...Option) *Store {
	s := &Store{
		Path:   path,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureExists creates the document as an empty collection if it does
// not exist yet.
func (s *Store) EnsureExists() error {
	if _, err := os.Stat(s.Path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", s.Path, err)
	}

	data, err := task.EncodeCollection(nil)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("create %s: %w", s.Path, err)
	}

	s.logger.Debug("created empty tasks file", "path", s.Path)
	return nil
}

// Load ensures the document exists, then decodes it. Elements that are
// not well-formed task objects are dropped with a warning; a document
// that is not a JSON array fails with ErrUnreadable.
func (s *Store) Load() ([]task.Task, error) {
	if err := s.EnsureExists(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}

	tasks, skipped, err := task.DecodeCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", s.Path, ErrUnreadable, err)
	}
	if skipped > 0 {
		s.logger.Warn("skipped malformed task entries", "path", s.Path, "count", skipped)
	}

	return tasks, nil
}

// Save serializes the full collection and overwrites the document.
func (s *Store) Save(tasks []task.Task) error {
	data, err := task.EncodeCollection(tasks)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", s.Path, err)
	}

	s.logger.Debug("saved tasks file", "path", s.Path, "count", len(tasks))
	return nil
}
