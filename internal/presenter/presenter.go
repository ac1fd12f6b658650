// Package presenter turns tasks into display rows shared by the CLI and TUI.
package presenter

import (
	"time"

	"github.com/runoshun/duelist/internal/domain"
)

// Row is one rendered task. Overdue is computed for the moment the row was
// built and is never stored.
// Fields are ordered to minimize memory padding.
type Row struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"task" yaml:"task"`
	Due       string `json:"due" yaml:"due"`
	Completed bool   `json:"completed" yaml:"completed"`
	Overdue   bool   `json:"overdue" yaml:"overdue"`
}

// NewRow renders a single task at time now using the Go time layout.
func NewRow(task domain.Task, now time.Time, layout string) Row {
	if layout == "" {
		layout = domain.DefaultTimeFormat
	}
	return Row{
		ID:        task.ID,
		Text:      task.Text,
		Due:       task.DueAt.In(now.Location()).Format(layout),
		Completed: task.Completed,
		Overdue:   task.IsOverdue(now),
	}
}

// Rows renders tasks in order.
func Rows(tasks []domain.Task, now time.Time, layout string) []Row {
	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, NewRow(t, now, layout))
	}
	return rows
}

// Counts summarizes a list for status lines.
type Counts struct {
	Total     int
	Completed int
	Overdue   int
}

// Count tallies tasks at time now.
func Count(tasks []domain.Task, now time.Time) Counts {
	c := Counts{Total: len(tasks)}
	for i := range tasks {
		if tasks[i].Completed {
			c.Completed++
		}
		if tasks[i].IsOverdue(now) {
			c.Overdue++
		}
	}
	return c
}
