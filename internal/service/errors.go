package service

import "errors"

var (
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrInvalidID        = errors.New("id must be a positive integer")
	ErrNotFound         = errors.New("task not found")
	ErrInvalidFilter    = errors.New("list status must be one of: todo, in-progress, done")
)
