package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/duedate"
)

// taskAdder adds tasks to the store.
type taskAdder interface {
	Add(ctx context.Context, text string, due time.Time) (domain.Task, error)
}

// NewTaskInput contains the parameters for creating a new task.
type NewTaskInput struct {
	Text string // Task text (required)
	Due  string // Due expression (empty = now)
}

// NewTaskOutput contains the result of creating a new task.
type NewTaskOutput struct {
	Task domain.Task // The created task
}

// NewTask is the use case for creating a new task.
type NewTask struct {
	store taskAdder
	clock domain.Clock
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(store taskAdder, clock domain.Clock) *NewTask {
	return &NewTask{
		store: store,
		clock: clock,
	}
}

// Execute resolves the due expression and adds the task.
func (uc *NewTask) Execute(ctx context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	due, err := duedate.Parse(in.Due, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	task, err := uc.store.Add(ctx, strings.TrimSpace(in.Text), due)
	if err != nil {
		return nil, err
	}
	return &NewTaskOutput{Task: task}, nil
}
