package todo

import (
	"errors"

	"github.com/taskpad/taskpad/pkg/instrument"
)

var (
	// ErrNotFound indicates the task does not exist or belongs to a
	// different owner.
	ErrNotFound = instrument.WithCode(errors.New("task not found"), "not_found")

	// ErrEmptyTitle indicates the task title was empty after sanitization.
	ErrEmptyTitle = instrument.WithCode(errors.New("task title cannot be empty"), "invalid_argument")
)
