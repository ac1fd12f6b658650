package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/duedate"
)

// taskUpdater reads and updates single tasks.
type taskUpdater interface {
	Get(id string) (domain.Task, bool)
	Update(ctx context.Context, id, text string, due time.Time) (domain.Task, bool, error)
}

// EditTaskInput contains the parameters for editing a task.
// Fields are ordered to minimize memory padding.
type EditTaskInput struct {
	Text   *string // New text (nil = keep current)
	Due    *string // New due expression (nil = keep current)
	TaskID string  // Task to edit
}

// EditTaskOutput contains the result of editing a task.
type EditTaskOutput struct {
	Task domain.Task // The updated task
}

// EditTask is the use case for replacing a task's text and due date.
type EditTask struct {
	store taskUpdater
	clock domain.Clock
}

// NewEditTask creates a new EditTask use case.
func NewEditTask(store taskUpdater, clock domain.Clock) *EditTask {
	return &EditTask{
		store: store,
		clock: clock,
	}
}

// Execute updates the task. Omitted fields keep their current values and the
// completion flag is never changed.
func (uc *EditTask) Execute(ctx context.Context, in EditTaskInput) (*EditTaskOutput, error) {
	current, ok := uc.store.Get(in.TaskID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}

	text := current.Text
	if in.Text != nil {
		text = strings.TrimSpace(*in.Text)
	}

	due := current.DueAt
	if in.Due != nil {
		parsed, err := duedate.Parse(*in.Due, uc.clock.Now())
		if err != nil {
			return nil, err
		}
		due = parsed
	}

	task, ok, err := uc.store.Update(ctx, in.TaskID, text, due)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &EditTaskOutput{Task: task}, nil
}
