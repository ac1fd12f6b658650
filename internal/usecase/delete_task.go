package usecase

import (
	"context"

	"github.com/runoshun/duelist/internal/domain"
)

// taskRemover removes tasks from the store.
type taskRemover interface {
	Remove(ctx context.Context, id string) bool
}

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID string // Task ID to delete
}

// DeleteTaskOutput contains the result of deleting a task.
type DeleteTaskOutput struct{}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	store taskRemover
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(store taskRemover) *DeleteTask {
	return &DeleteTask{
		store: store,
	}
}

// Execute deletes the task with the given ID.
// The collection is rewritten even when no task matched.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) (*DeleteTaskOutput, error) {
	if !uc.store.Remove(ctx, in.TaskID) {
		return nil, domain.ErrTaskNotFound
	}
	return &DeleteTaskOutput{}, nil
}
