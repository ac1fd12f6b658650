package usecase

import (
	"context"
	"time"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/duedate"
)

// taskSubmitter is the form side of the task store.
type taskSubmitter interface {
	Submit(ctx context.Context, text string, due time.Time) (domain.Task, bool, error)
}

// SubmitTaskInput contains the form values.
type SubmitTaskInput struct {
	Text string // Task text
	Due  string // Due expression (empty = now)
}

// SubmitTaskOutput contains the result of a submit.
// Fields are ordered to minimize memory padding.
type SubmitTaskOutput struct {
	Task    domain.Task // Added or updated task (zero when Applied is false)
	Applied bool        // False when the edited task no longer existed
}

// SubmitTask adds a task, or updates the one being edited.
type SubmitTask struct {
	store taskSubmitter
	clock domain.Clock
}

// NewSubmitTask creates a new SubmitTask use case.
func NewSubmitTask(store taskSubmitter, clock domain.Clock) *SubmitTask {
	return &SubmitTask{
		store: store,
		clock: clock,
	}
}

// Execute resolves the due expression and submits the form.
// A due expression that does not parse leaves the store untouched.
func (uc *SubmitTask) Execute(ctx context.Context, in SubmitTaskInput) (*SubmitTaskOutput, error) {
	due, err := duedate.Parse(in.Due, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	task, ok, err := uc.store.Submit(ctx, in.Text, due)
	if err != nil {
		return nil, err
	}
	return &SubmitTaskOutput{Task: task, Applied: ok}, nil
}
