package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/presenter"
)

type taskItem struct {
	row presenter.Row
}

func (t taskItem) FilterValue() string {
	return t.row.Text
}

// escapeNewlines replaces newline characters with spaces for single-line display.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// truncate shortens s to width display cells, marking the cut with "...".
func truncate(s string, width int) string {
	if width < 4 {
		width = 4
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

type taskDelegate struct {
	styles  Styles
	editing string // id of the task loaded into the form
}

func newTaskDelegate(styles Styles) *taskDelegate {
	return &taskDelegate{styles: styles}
}

func (d *taskDelegate) Height() int {
	return 1
}

func (d *taskDelegate) Spacing() int {
	return 0
}

func (d *taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d *taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	row := ti.row
	selected := index == m.Index()
	state := RowState(row)

	indicatorChar := " "
	if selected {
		indicatorChar = ">"
	}
	editMark := " "
	if row.ID == d.editing {
		editMark = "*"
	}

	idStr := fmt.Sprintf("%-*s", domain.ShortIDLength, domain.ShortID(row.ID))
	statusIcon := StateIcon(state)
	statusText := fmt.Sprintf("%-4s", StateText(state))

	// indicator, edit mark, id, icon, state, due, then the text
	prefixWidth := 2 + 1 + 1 + 1 + domain.ShortIDLength + 2 + 1 + 1 + 4 + 2 + runewidth.StringWidth(row.Due) + 2
	text := truncate(escapeNewlines(row.Text), m.Width()-prefixWidth-2)

	stateStyle := d.styles.StateStyle(state)
	titleStyle := d.styles.TaskTitle
	if row.Completed {
		titleStyle = d.styles.TaskTitleDone
	}
	indicator := d.styles.SelectionIndicator
	if selected {
		stateStyle = stateStyle.Bold(true)
		titleStyle = titleStyle.Bold(true)
		indicator = indicator.Bold(true)
	}

	line := "  " + indicator.Render(indicatorChar) + editMark + " " +
		d.styles.TaskDue.Render(idStr) + "  " +
		stateStyle.Render(statusIcon) + " " + stateStyle.Render(statusText) + "  " +
		d.styles.TaskDue.Render(row.Due) + "  " +
		titleStyle.Render(text)
	_, _ = fmt.Fprint(w, line)
}
