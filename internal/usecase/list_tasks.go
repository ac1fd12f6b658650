package usecase

import (
	"context"
	"time"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/presenter"
)

// taskViewer is the read side of the task store.
type taskViewer interface {
	FilteredView(kind domain.FilterKind, now time.Time) []domain.Task
}

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Filter     domain.FilterKind // all, completed or overdue (empty = all)
	TimeFormat string            // Go layout for the Due column (empty = default)
}

// ListTasksOutput contains the result of listing tasks.
// Fields are ordered to minimize memory padding.
type ListTasksOutput struct {
	Now    time.Time        // Instant the overdue flags were computed for
	Tasks  []domain.Task    // Tasks matching the filter, in insertion order
	Rows   []presenter.Row  // Tasks rendered for display
	Counts presenter.Counts // Totals over the whole list, not just the filtered view
}

// ListTasks is the use case for listing tasks.
type ListTasks struct {
	store taskViewer
	clock domain.Clock
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(store taskViewer, clock domain.Clock) *ListTasks {
	return &ListTasks{
		store: store,
		clock: clock,
	}
}

// Execute lists tasks matching the filter at the current time.
func (uc *ListTasks) Execute(_ context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	kind, err := domain.ParseFilterKind(string(in.Filter))
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	tasks := uc.store.FilteredView(kind, now)

	return &ListTasksOutput{
		Now:    now,
		Tasks:  tasks,
		Rows:   presenter.Rows(tasks, now, in.TimeFormat),
		Counts: presenter.Count(uc.store.FilteredView(domain.FilterAll, now), now),
	}, nil
}
