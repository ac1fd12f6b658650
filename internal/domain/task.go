// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Task represents a single to-do entry.
// Fields are ordered to minimize memory padding.
type Task struct {
	DueAt     time.Time `json:"dateTime"`  // Due date and time
	ID        string    `json:"id"`        // Opaque identifier, stable for the task's lifetime
	Text      string    `json:"task"`      // Display text (never empty after trimming)
	Completed bool      `json:"completed"` // Toggled only by ToggleComplete
}

// IsOverdue reports whether the task is unfinished and due before now.
// It is recomputed on every call and never stored.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.Completed && t.DueAt.Before(now)
}

// ValidateText rejects text that is empty after trimming. The text itself
// is stored as given.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyTask
	}
	return nil
}

// NormalizeText trims the task text and rejects empty input.
func NormalizeText(text string) (string, error) {
	if err := ValidateText(text); err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// IndexOf returns the position of the task with the given id, or -1.
func IndexOf(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// CloneTasks returns a copy of tasks that shares no backing array with the input.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// ShortIDLength is the number of id characters shown in compact listings.
const ShortIDLength = 8

// ShortID returns the leading part of an id for display.
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

// ResolveID finds the task whose id equals ref or, failing that, is the only
// id starting with ref.
func ResolveID(tasks []Task, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrTaskNotFound
	}

	if IndexOf(tasks, ref) >= 0 {
		return ref, nil
	}

	var match string
	for i := range tasks {
		if !strings.HasPrefix(tasks[i].ID, ref) {
			continue
		}
		if match != "" {
			return "", fmt.Errorf("%w: %q", ErrAmbiguousID, ref)
		}
		match = tasks[i].ID
	}
	if match == "" {
		return "", fmt.Errorf("%w: %q", ErrTaskNotFound, ref)
	}
	return match, nil
}
