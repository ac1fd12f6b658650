package domain

import (
	"fmt"
	"strings"
	"time"
)

// FilterKind selects which subset of tasks to present.
type FilterKind string

const (
	FilterAll       FilterKind = "all"       // Every task, insertion order
	FilterCompleted FilterKind = "completed" // Completed tasks only
	FilterOverdue   FilterKind = "overdue"   // Unfinished tasks due before now
)

// AllFilterKinds returns the filter kinds in display order.
func AllFilterKinds() []FilterKind {
	return []FilterKind{FilterAll, FilterCompleted, FilterOverdue}
}

// ParseFilterKind parses a filter name. An empty string means FilterAll.
func ParseFilterKind(s string) (FilterKind, error) {
	switch FilterKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterCompleted:
		return FilterCompleted, nil
	case FilterOverdue:
		return FilterOverdue, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
}

// Next returns the filter that follows k in display order, wrapping around.
func (k FilterKind) Next() FilterKind {
	kinds := AllFilterKinds()
	for i, kind := range kinds {
		if kind == k {
			return kinds[(i+1)%len(kinds)]
		}
	}
	return FilterAll
}

// Display returns a human-readable label for the filter.
func (k FilterKind) Display() string {
	switch k {
	case FilterAll:
		return "All"
	case FilterCompleted:
		return "Completed"
	case FilterOverdue:
		return "Overdue"
	default:
		return string(k)
	}
}

// Match reports whether the task belongs to the filtered view at time now.
func (k FilterKind) Match(t *Task, now time.Time) bool {
	switch k {
	case FilterCompleted:
		return t.Completed
	case FilterOverdue:
		return t.IsOverdue(now)
	default:
		return true
	}
}

// ApplyFilter returns the tasks matching kind, preserving order.
// The input slice is never modified.
func ApplyFilter(tasks []Task, kind FilterKind, now time.Time) []Task {
	out := make([]Task, 0, len(tasks))
	for i := range tasks {
		if kind.Match(&tasks[i], now) {
			out = append(out, tasks[i])
		}
	}
	return out
}
