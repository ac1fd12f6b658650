package usecase

import (
	"context"

	"github.com/runoshun/duelist/internal/domain"
)

// taskToggler flips completion flags.
type taskToggler interface {
	ToggleComplete(ctx context.Context, id string) (domain.Task, bool)
}

// CompleteTaskInput contains the parameters for toggling a task.
type CompleteTaskInput struct {
	TaskID string // Task ID to toggle
}

// CompleteTaskOutput contains the result of toggling a task.
type CompleteTaskOutput struct {
	Task domain.Task // The task after the toggle
}

// CompleteTask is the use case for toggling a task between open and completed.
type CompleteTask struct {
	store taskToggler
}

// NewCompleteTask creates a new CompleteTask use case.
func NewCompleteTask(store taskToggler) *CompleteTask {
	return &CompleteTask{
		store: store,
	}
}

// Execute toggles the completion flag. Running it twice restores the task.
func (uc *CompleteTask) Execute(ctx context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	task, ok := uc.store.ToggleComplete(ctx, in.TaskID)
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return &CompleteTaskOutput{Task: task}, nil
}
