package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/duedate"
)

// taskImporter is the write side of the task store used by imports.
type taskImporter interface {
	Add(ctx context.Context, text string, due time.Time) (domain.Task, error)
	ToggleComplete(ctx context.Context, id string) (domain.Task, bool)
}

// ImportTasksInput contains the parameters for importing tasks.
type ImportTasksInput struct {
	Drafts []domain.TaskDraft // Tasks read from the import file
	DryRun bool               // If true, validate without adding
}

// ImportTasksOutput contains the result of importing tasks.
type ImportTasksOutput struct {
	Tasks []domain.Task // Added tasks (ids are empty in dry-run mode)
}

// ImportTasks is the use case for adding many tasks at once.
type ImportTasks struct {
	store taskImporter
	clock domain.Clock
}

// NewImportTasks creates a new ImportTasks use case.
func NewImportTasks(store taskImporter, clock domain.Clock) *ImportTasks {
	return &ImportTasks{
		store: store,
		clock: clock,
	}
}

// Execute validates every draft, then adds them in order.
// Nothing is added if any draft is invalid.
func (uc *ImportTasks) Execute(ctx context.Context, in ImportTasksInput) (*ImportTasksOutput, error) {
	now := uc.clock.Now()

	planned := make([]domain.Task, 0, len(in.Drafts))
	for i, d := range in.Drafts {
		text, err := domain.NormalizeText(d.Text)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		due, err := duedate.Parse(d.Due, now)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
		planned = append(planned, domain.Task{Text: text, DueAt: due, Completed: d.Completed})
	}

	if in.DryRun {
		return &ImportTasksOutput{Tasks: planned}, nil
	}

	added := make([]domain.Task, 0, len(planned))
	for _, p := range planned {
		task, err := uc.store.Add(ctx, p.Text, p.DueAt)
		if err != nil {
			return &ImportTasksOutput{Tasks: added}, fmt.Errorf("add %q: %w", p.Text, err)
		}
		if p.Completed {
			if toggled, ok := uc.store.ToggleComplete(ctx, task.ID); ok {
				task = toggled
			}
		}
		added = append(added, task)
	}

	return &ImportTasksOutput{Tasks: added}, nil
}
