package domain

import "time"

// Draft holds the editable values shown while a task is targeted for update.
type Draft struct {
	DueAt time.Time
	Text  string
}

// EditState is the single edit-mode value: idle, or editing exactly one task.
// The zero value is idle.
type EditState struct {
	Draft  Draft
	TaskID string
}

// IsEditing returns true if a task is targeted for update.
func (e EditState) IsEditing() bool {
	return e.TaskID != ""
}

// Begin returns the state for editing t, with t's current values as the draft.
// Any previous draft is abandoned.
func (e EditState) Begin(t Task) EditState {
	return EditState{
		TaskID: t.ID,
		Draft:  Draft{Text: t.Text, DueAt: t.DueAt},
	}
}

// Idle returns the idle state.
func (EditState) Idle() EditState {
	return EditState{}
}
