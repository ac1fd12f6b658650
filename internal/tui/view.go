package tui

import (
	"strings"

	"github.com/runoshun/duelist/internal/domain"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeHelp:
		content = m.viewHelp()
	case ModeNormal, ModeInputText, ModeInputDue:
		content = m.viewMain()
	}

	return m.styles.App.Render(content)
}

// viewMain renders the header, form, task list and footer.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	b.WriteString(m.viewForm())
	b.WriteString("\n\n")

	b.WriteString(m.viewTaskList())
	b.WriteString("\n")

	b.WriteString(m.viewNotice())
	b.WriteString("\n")

	b.WriteString(m.status.Render(m.GetStatusInfo()))

	return b.String()
}

// viewHeader renders the title and the filter bar.
func (m *Model) viewHeader() string {
	parts := make([]string, 0, len(domain.AllFilterKinds()))
	for _, kind := range domain.AllFilterKinds() {
		if kind == m.filter {
			parts = append(parts, m.styles.FilterActive.Render(kind.Display()))
		} else {
			parts = append(parts, m.styles.FilterOther.Render(kind.Display()))
		}
	}
	return m.styles.Header.Render("duelist") + "  " + strings.Join(parts, " · ")
}

// viewForm renders the text and due inputs.
func (m *Model) viewForm() string {
	label := m.styles.FormLabel.Render("new task")
	if m.editing != "" {
		label = m.styles.FormEditing.Render("editing " + domain.ShortID(m.editing))
	}

	textPrompt := m.styles.FormLabel.Render("Task: ")
	if m.mode == ModeInputText {
		textPrompt = m.styles.InputPrompt.Render("Task: ")
	}
	duePrompt := m.styles.FormLabel.Render("Due:  ")
	if m.mode == ModeInputDue {
		duePrompt = m.styles.InputPrompt.Render("Due:  ")
	}

	return textPrompt + m.textInput.View() + "  " + label + "\n" +
		duePrompt + m.dueInput.View()
}

// viewTaskList renders the list, or a placeholder when it is empty.
func (m *Model) viewTaskList() string {
	if len(m.taskList.Items()) == 0 {
		if m.counts.Total == 0 {
			return m.styles.Empty.Render("No tasks yet")
		}
		return m.styles.Empty.Render("No " + strings.ToLower(m.filter.Display()) + " tasks")
	}
	return m.taskList.View()
}

// viewNotice renders the current error or notice, if any.
func (m *Model) viewNotice() string {
	if m.err != nil {
		return m.styles.ErrorMsg.Render("Error: " + m.err.Error())
	}
	if m.notice != "" {
		return m.styles.Notice.Render(m.notice)
	}
	return ""
}

// viewHelp renders the full key help.
func (m *Model) viewHelp() string {
	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(m.status.Render(m.GetStatusInfo()))
	return b.String()
}
