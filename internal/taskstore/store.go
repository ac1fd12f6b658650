// Package taskstore holds the authoritative task list and mirrors every
// mutation to a key-value store.
//
// All operations are serialized by one mutex. Each mutating operation writes
// the full collection exactly once. A failed write is logged and the in-memory
// change is kept: the list stays usable for the rest of the session and the
// next successful write persists it.
package taskstore

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/infra/taskcodec"
)

// Store is the task store.
// Fields are ordered to minimize memory padding.
type Store struct {
	kv       domain.KeyValueStore
	ids      domain.IDGenerator
	notifier domain.Notifier
	logger   *slog.Logger
	key      string
	tasks    []domain.Task
	edit     domain.EditState
	mu       sync.Mutex
}

// New creates a Store with an empty list. Call Load to read persisted tasks.
func New(kv domain.KeyValueStore, ids domain.IDGenerator, notifier domain.Notifier, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		kv:       kv,
		ids:      ids,
		notifier: notifier,
		logger:   logger,
		key:      domain.DefaultStorageKey,
	}
}

// WithKey sets the key under which the collection is stored.
func (s *Store) WithKey(key string) *Store {
	if key != "" {
		s.key = key
	}
	return s
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Load replaces the in-memory list with the persisted collection.
// Read and decode failures are logged and leave an empty list.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.edit = s.edit.Idle()
	s.tasks = nil

	value, found, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.logger.Error("load tasks", "key", s.key, "err", err)
		return
	}
	if !found {
		s.logger.Debug("no stored tasks", "key", s.key)
		return
	}

	tasks, err := taskcodec.Decode(value)
	if err != nil {
		s.logger.Error("decode tasks", "key", s.key, "err", err)
		return
	}

	s.tasks = s.dropDuplicateIDs(tasks)
	s.logger.Debug("tasks loaded", "key", s.key, "count", len(s.tasks))
}

// dropDuplicateIDs keeps the first task for each id.
func (s *Store) dropDuplicateIDs(tasks []domain.Task) []domain.Task {
	seen := make(map[string]bool, len(tasks))
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			s.logger.Warn("duplicate task id dropped", "id", t.ID, "task", t.Text)
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}

// Add appends a new open task and clears the edit state.
// Empty text is reported to the notifier and returned as domain.ErrEmptyTask
// without touching state or storage.
func (s *Store) Add(ctx context.Context, text string, due time.Time) (domain.Task, error) {
	s.mu.Lock()
	task, err := s.addLocked(ctx, text, due)
	s.mu.Unlock()

	s.report(err)
	return task, err
}

func (s *Store) addLocked(ctx context.Context, text string, due time.Time) (domain.Task, error) {
	if err := domain.ValidateText(text); err != nil {
		return domain.Task{}, err
	}

	task := domain.Task{
		ID:    s.newID(),
		Text:  text,
		DueAt: due,
	}
	next := append(domain.CloneTasks(s.tasks), task)

	s.edit = s.edit.Idle()
	s.commit(ctx, next)
	s.logger.Info("task added", "id", task.ID)
	return task, nil
}

// newID returns an id not present in the list.
func (s *Store) newID() string {
	for {
		id := s.ids.NewID()
		if domain.IndexOf(s.tasks, id) < 0 {
			return id
		}
		s.logger.Warn("id collision, regenerating", "id", id)
	}
}

// Update replaces the text and due date of an existing task, keeping its id
// and completion flag, and clears the edit state. ok is false when no task
// has the id; that case changes nothing.
func (s *Store) Update(ctx context.Context, id, text string, due time.Time) (task domain.Task, ok bool, err error) {
	s.mu.Lock()
	task, ok, err = s.updateLocked(ctx, id, text, due)
	s.mu.Unlock()

	s.report(err)
	return task, ok, err
}

func (s *Store) updateLocked(ctx context.Context, id, text string, due time.Time) (domain.Task, bool, error) {
	if err := domain.ValidateText(text); err != nil {
		return domain.Task{}, false, err
	}

	idx := domain.IndexOf(s.tasks, id)
	if idx < 0 {
		s.logger.Debug("update of missing task ignored", "id", id)
		return domain.Task{}, false, nil
	}

	next := domain.CloneTasks(s.tasks)
	next[idx].Text = text
	next[idx].DueAt = due

	s.edit = s.edit.Idle()
	s.commit(ctx, next)
	s.logger.Info("task updated", "id", id)
	return next[idx], true, nil
}

// Remove deletes the task with the id if present and persists the result.
// It returns true if a task was removed.
func (s *Store) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Task, 0, len(s.tasks))
	removed := false
	for _, t := range s.tasks {
		if t.ID == id {
			removed = true
			continue
		}
		next = append(next, t)
	}

	s.commit(ctx, next)
	if removed {
		s.logger.Info("task removed", "id", id)
	}
	return removed
}

// ToggleComplete flips the completion flag of the task with the id.
// ok is false when no task has the id.
func (s *Store) ToggleComplete(ctx context.Context, id string) (task domain.Task, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := domain.IndexOf(s.tasks, id)
	if idx < 0 {
		s.logger.Debug("toggle of missing task ignored", "id", id)
		return domain.Task{}, false
	}

	next := domain.CloneTasks(s.tasks)
	next[idx].Completed = !next[idx].Completed

	s.commit(ctx, next)
	s.logger.Info("task toggled", "id", id, "completed", next[idx].Completed)
	return next[idx], true
}

// BeginEdit targets the task for update and returns its current values as the
// draft. The task itself is not changed. For an unknown id the edit state is
// left as it was and ok is false.
func (s *Store) BeginEdit(id string) (draft domain.Draft, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := domain.IndexOf(s.tasks, id)
	if idx < 0 {
		return domain.Draft{}, false
	}
	s.edit = s.edit.Begin(s.tasks[idx])
	return s.edit.Draft, true
}

// Submit updates the task being edited, or adds a new task when idle.
// ok is false only when the edited task no longer exists; the stale
// reference is then dropped and nothing else changes.
func (s *Store) Submit(ctx context.Context, text string, due time.Time) (task domain.Task, ok bool, err error) {
	s.mu.Lock()
	task, ok, err = s.submitLocked(ctx, text, due)
	s.mu.Unlock()

	s.report(err)
	return task, ok, err
}

func (s *Store) submitLocked(ctx context.Context, text string, due time.Time) (domain.Task, bool, error) {
	if !s.edit.IsEditing() {
		task, err := s.addLocked(ctx, text, due)
		return task, err == nil, err
	}

	task, ok, err := s.updateLocked(ctx, s.edit.TaskID, text, due)
	if err == nil && !ok {
		s.edit = s.edit.Idle()
	}
	return task, ok, err
}

// Edit returns the current edit state.
func (s *Store) Edit() domain.EditState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edit
}

// Tasks returns a copy of the full list in insertion order.
func (s *Store) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneTasks(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Get returns the task with the id.
func (s *Store) Get(id string) (domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := domain.IndexOf(s.tasks, id)
	if idx < 0 {
		return domain.Task{}, false
	}
	return s.tasks[idx], true
}

// FilteredView returns the tasks selected by kind at time now.
// It never changes the list.
func (s *Store) FilteredView(kind domain.FilterKind, now time.Time) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.ApplyFilter(s.tasks, kind, now)
}

// validate normalizes text, rejecting empty input.
// report sends validation failures to the notifier. It must be called
// without s.mu held: a notifier may block until its receiver has read the
// store.
func (s *Store) report(err error) {
	if s.notifier != nil && errors.Is(err, domain.ErrEmptyTask) {
		s.notifier.Notify(err.Error())
	}
}

// commit installs next as the list and writes it once.
// The in-memory list is kept even if the write fails. A started write is
// not cut short by cancellation of ctx.
func (s *Store) commit(ctx context.Context, next []domain.Task) {
	ctx = context.WithoutCancel(ctx)
	s.tasks = next

	value, err := taskcodec.Encode(next)
	if err != nil {
		s.logger.Error("encode tasks", "key", s.key, "err", err)
		return
	}
	if err := s.kv.Set(ctx, s.key, value); err != nil {
		s.logger.Error("save tasks", "key", s.key, "err", err)
	}
}
