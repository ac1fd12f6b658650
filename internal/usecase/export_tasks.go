package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/infra/export"
	"github.com/runoshun/duelist/internal/presenter"
)

// ExportTasksInput contains the parameters for exporting tasks.
// Fields are ordered to minimize memory padding.
type ExportTasksInput struct {
	Writer     io.Writer         // Destination
	Format     export.Format     // ics or pdf
	Filter     domain.FilterKind // Tasks to include (empty = all)
	Title      string            // PDF heading
	TimeFormat string            // Go layout for PDF due dates
}

// ExportTasksOutput contains the result of exporting tasks.
type ExportTasksOutput struct {
	Count int // Number of tasks written
}

// ExportTasks is the use case for writing tasks to an exchange format.
type ExportTasks struct {
	store taskViewer
	clock domain.Clock
}

// NewExportTasks creates a new ExportTasks use case.
func NewExportTasks(store taskViewer, clock domain.Clock) *ExportTasks {
	return &ExportTasks{
		store: store,
		clock: clock,
	}
}

// Execute writes the filtered tasks to in.Writer.
func (uc *ExportTasks) Execute(_ context.Context, in ExportTasksInput) (*ExportTasksOutput, error) {
	kind, err := domain.ParseFilterKind(string(in.Filter))
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	tasks := uc.store.FilteredView(kind, now)

	switch in.Format {
	case export.FormatICS:
		err = export.WriteICS(in.Writer, tasks, now)
	case export.FormatPDF:
		title := in.Title
		if title == "" {
			title = "Tasks (" + kind.Display() + ")"
		}
		err = export.WritePDF(in.Writer, title, presenter.Rows(tasks, now, in.TimeFormat))
	default:
		err = fmt.Errorf("%w: %q", domain.ErrUnknownFormat, in.Format)
	}
	if err != nil {
		return nil, err
	}

	return &ExportTasksOutput{Count: len(tasks)}, nil
}
