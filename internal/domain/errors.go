package domain

import "errors"

// Domain errors.
var (
	ErrEmptyTask        = errors.New("task name cannot be empty")
	ErrTaskNotFound     = errors.New("task not found")
	ErrAmbiguousID      = errors.New("ambiguous task id")
	ErrUnknownFilter    = errors.New("unknown filter")
	ErrUnknownBackend   = errors.New("unknown storage backend")
	ErrUnknownFormat    = errors.New("unknown output format")
	ErrInvalidDue       = errors.New("invalid due date")
	ErrConfigExists     = errors.New("config file already exists")
	ErrMalformedStorage = errors.New("malformed task collection")
)
