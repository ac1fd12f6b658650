package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/presenter"
)

// =============================================================================
// Add Command Tests
// =============================================================================

func TestAddCommand_CreateTask(t *testing.T) {
	c := newTestContainer(t)

	out, _, err := execute(t, c, "add", "Buy", "milk", "--due", "tomorrow 09:30")

	require.NoError(t, err)
	assert.Contains(t, out, "Added task id-1 (due 2025-01-02 09:30)")

	tasks := c.Store.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Text)
	assert.False(t, tasks[0].Completed)
}

func TestAddCommand_DefaultDueIsNow(t *testing.T) {
	c := newTestContainer(t)

	_, _, err := execute(t, c, "add", "Call mom")

	require.NoError(t, err)
	assert.Equal(t, testNow, c.Store.Tasks()[0].DueAt)
}

func TestAddCommand_EmptyText(t *testing.T) {
	c := newTestContainer(t)

	_, _, err := execute(t, c, "add", "   ")

	assert.ErrorIs(t, err, domain.ErrEmptyTask)
	assert.Equal(t, 0, c.Store.Len())
}

func TestAddCommand_NoArgs(t *testing.T) {
	_, _, err := execute(t, newTestContainer(t), "add")
	assert.Error(t, err)
}

func TestAddCommand_InvalidDue(t *testing.T) {
	c := newTestContainer(t)

	_, _, err := execute(t, c, "add", "x", "--due", "eventually maybe")

	assert.ErrorIs(t, err, domain.ErrInvalidDue)
	assert.Equal(t, 0, c.Store.Len())
}

// fakeEditor installs a shell script as $EDITOR that appends body to the file.
func fakeEditor(t *testing.T, body string) {
	t.Helper()
	script := filepath.Join(t.TempDir(), "editor.sh")
	content := "#!/bin/sh\ncat >> \"$1\" <<'DRAFTS'\n" + body + "DRAFTS\n"
	require.NoError(t, os.WriteFile(script, []byte(content), 0o700))
	t.Setenv("EDITOR", script)
}

func TestAddCommand_Editor(t *testing.T) {
	c := newTestContainer(t)
	fakeEditor(t, "- task: From editor\n  due: tomorrow 09:00\n- task: Second\n")

	out, _, err := execute(t, c, "add", "--editor")

	require.NoError(t, err)
	assert.Contains(t, out, "Added task id-1 (due 2025-01-02 09:00)")
	assert.Contains(t, out, "Added task id-2 (due 2025-01-01 12:00)")
	require.Equal(t, 2, c.Store.Len())
	assert.Equal(t, "From editor", c.Store.Tasks()[0].Text)
}

func TestAddCommand_EditorUnchanged(t *testing.T) {
	c := newTestContainer(t)
	fakeEditor(t, "")

	out, _, err := execute(t, c, "add", "-e")

	require.NoError(t, err)
	assert.Contains(t, out, "No tasks added")
	assert.Equal(t, 0, c.Store.Len())
}

func TestAddCommand_EditorRejectsText(t *testing.T) {
	_, _, err := execute(t, newTestContainer(t), "add", "--editor", "Buy milk")
	assert.Error(t, err)
}

func TestAddCommand_EditorFails(t *testing.T) {
	t.Setenv("EDITOR", filepath.Join(t.TempDir(), "missing-editor"))

	_, _, err := execute(t, newTestContainer(t), "add", "--editor")

	assert.ErrorContains(t, err, "failed to run editor")
}

// =============================================================================
// List Command Tests
// =============================================================================

func TestListCommand_Empty(t *testing.T) {
	out, _, err := execute(t, newTestContainer(t), "ls")

	require.NoError(t, err)
	assert.Equal(t, "No tasks yet\n", out)
}

func TestListCommand_Text(t *testing.T) {
	c := newTestContainer(t)
	ctx := t.Context()
	_, _ = c.Store.Add(ctx, "late", testNow.Add(-time.Hour))
	open, _ := c.Store.Add(ctx, "open", testNow.Add(time.Hour))
	done, _ := c.Store.Add(ctx, "finished", testNow.Add(time.Hour))
	_, _ = c.Store.ToggleComplete(ctx, done.ID)

	out, _, err := execute(t, c, "ls")

	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "STATUS")
	assert.Regexp(t, `id-1\s+2025-01-01 11:00\s+overdue\s+late`, out)
	assert.Regexp(t, open.ID+`\s+2025-01-01 13:00\s+open\s+open`, out)
	assert.Regexp(t, `id-3\s+2025-01-01 13:00\s+done\s+finished`, out)
	assert.Contains(t, out, "All: 3 shown, 3 total, 1 completed, 1 overdue")
}

func TestListCommand_Filter(t *testing.T) {
	c := newTestContainer(t)
	ctx := t.Context()
	_, _ = c.Store.Add(ctx, "late", testNow.Add(-time.Hour))
	_, _ = c.Store.Add(ctx, "open", testNow.Add(time.Hour))

	out, _, err := execute(t, c, "ls", "--filter", "overdue")

	require.NoError(t, err)
	assert.Contains(t, out, "late")
	assert.NotContains(t, out, "open ")
	assert.Contains(t, out, "Overdue: 1 shown, 2 total")
}

func TestListCommand_MultiLineText(t *testing.T) {
	c := newTestContainer(t)
	_, _, err := execute(t, c, "add", "first line\nsecond line")
	require.NoError(t, err)
	addTasks(t, c, "tab\tseparated")

	out, _, err := execute(t, c, "ls")

	require.NoError(t, err)
	assert.Contains(t, out, `first line\nsecond line`)
	assert.Contains(t, out, "tab separated")
	assert.Contains(t, out, "All: 2 shown, 2 total")
	// header, two rows, summary
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 4)
	// The stored text keeps its newline
	assert.Equal(t, "first line\nsecond line", c.Store.Tasks()[0].Text)
}

func TestListCommand_FilterNoMatch(t *testing.T) {
	c := newTestContainer(t)
	addTasks(t, c, "open")

	out, _, err := execute(t, c, "ls", "-f", "completed")

	require.NoError(t, err)
	assert.Equal(t, "No tasks match filter \"completed\"\n", out)
}

func TestListCommand_DefaultFilterFromConfig(t *testing.T) {
	c := newTestContainer(t)
	c.AppConfig.Display.DefaultFilter = "completed"
	addTasks(t, c, "open")

	out, _, err := execute(t, c, "ls")

	require.NoError(t, err)
	assert.Contains(t, out, "No tasks match filter")
}

func TestListCommand_UnknownFilter(t *testing.T) {
	_, _, err := execute(t, newTestContainer(t), "ls", "--filter", "someday")
	assert.ErrorIs(t, err, domain.ErrUnknownFilter)
}

func TestListCommand_JSON(t *testing.T) {
	c := newTestContainer(t)
	addTasks(t, c, "Buy milk")

	out, _, err := execute(t, c, "ls", "--format", "json")
	require.NoError(t, err)

	var rows []presenter.Row
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, presenter.Row{ID: "id-1", Text: "Buy milk", Due: "2025-01-01 13:00"}, rows[0])
}

func TestListCommand_JSONEmptyIsArray(t *testing.T) {
	out, _, err := execute(t, newTestContainer(t), "ls", "--format", "json")

	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestListCommand_YAML(t *testing.T) {
	c := newTestContainer(t)
	addTasks(t, c, "Buy milk", "Walk dog")

	out, _, err := execute(t, c, "ls", "--format", "yaml")
	require.NoError(t, err)

	var rows []presenter.Row
	require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Walk dog", rows[1].Text)
	assert.Contains(t, out, "task: Buy milk")
}

func TestListCommand_UnknownFormat(t *testing.T) {
	_, _, err := execute(t, newTestContainer(t), "ls", "--format", "xml")
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)
}

// =============================================================================
// Edit Command Tests
// =============================================================================

func TestEditCommand_Text(t *testing.T) {
	c := newTestContainer(t)
	task := addTasks(t, c, "Buy milk")[0]

	out, _, err := execute(t, c, "edit", task.ID, "Buy", "oat", "milk")

	require.NoError(t, err)
	assert.Contains(t, out, "Updated task id-1: Buy oat milk (due 2025-01-01 13:00)")
	got, _ := c.Store.Get(task.ID)
	assert.Equal(t, "Buy oat milk", got.Text)
	assert.Equal(t, task.DueAt, got.DueAt)
}

func TestEditCommand_DueOnly(t *testing.T) {
	c := newTestContainer(t)
	task := addTasks(t, c, "Buy milk")[0]

	_, _, err := execute(t, c, "edit", task.ID, "--due", "in 2 days 08:00")

	require.NoError(t, err)
	got, _ := c.Store.Get(task.ID)
	assert.Equal(t, "Buy milk", got.Text)
	assert.Equal(t, time.Date(2025, 1, 3, 8, 0, 0, 0, time.UTC), got.DueAt)
}

func TestEditCommand_PreservesCompletion(t *testing.T) {
	c := newTestContainer(t)
	task := addTasks(t, c, "a")[0]
	_, _ = c.Store.ToggleComplete(t.Context(), task.ID)

	_, _, err := execute(t, c, "edit", task.ID, "b")

	require.NoError(t, err)
	got, _ := c.Store.Get(task.ID)
	assert.True(t, got.Completed)
}

func TestEditCommand_NothingToChange(t *testing.T) {
	c := newTestContainer(t)
	task := addTasks(t, c, "a")[0]

	_, _, err := execute(t, c, "edit", task.ID)

	assert.ErrorContains(t, err, "nothing to change")
}

func TestEditCommand_EmptyText(t *testing.T) {
	c := newTestContainer(t)
	task := addTasks(t, c, "keep")[0]

	_, _, err := execute(t, c, "edit", task.ID, " ")

	assert.ErrorIs(t, err, domain.ErrEmptyTask)
	got, _ := c.Store.Get(task.ID)
	assert.Equal(t, "keep", got.Text)
}

func TestEditCommand_NotFound(t *testing.T) {
	_, _, err := execute(t, newTestContainer(t), "edit", "nope", "x")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

// =============================================================================
// Done / Rm Command Tests
// =============================================================================

func TestDoneCommand_Toggles(t *testing.T) {
	c := newTestContainer(t)
	task := addTasks(t, c, "a")[0]

	out, _, err := execute(t, c, "done", task.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Task id-1 completed")

	out, _, err = execute(t, c, "done", task.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Task id-1 reopened")

	got, _ := c.Store.Get(task.ID)
	assert.False(t, got.Completed)
}

func TestDoneCommand_PrefixResolution(t *testing.T) {
	c := newTestContainer(t)
	addTasks(t, c, "a", "b")

	// "id-" matches both tasks
	_, _, err := execute(t, c, "done", "id-")
	assert.ErrorIs(t, err, domain.ErrAmbiguousID)

	_, _, err = execute(t, c, "done", "id-2")
	require.NoError(t, err)
	got, _ := c.Store.Get("id-2")
	assert.True(t, got.Completed)
}

func TestRmCommand(t *testing.T) {
	c := newTestContainer(t)
	tasks := addTasks(t, c, "a", "b")

	out, _, err := execute(t, c, "rm", tasks[0].ID)

	require.NoError(t, err)
	assert.Contains(t, out, "Deleted task id-1")
	remaining := c.Store.Tasks()
	require.Len(t, remaining, 1)
	assert.Equal(t, tasks[1].ID, remaining[0].ID)
}

func TestRmCommand_NotFound(t *testing.T) {
	c := newTestContainer(t)
	addTasks(t, c, "a")

	_, _, err := execute(t, c, "rm", "zzz")

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.Equal(t, 1, c.Store.Len())
}
