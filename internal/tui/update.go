package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayoutSizes()
		return m, nil

	case MsgTick:
		m.refresh()
		return m, m.tick()

	case MsgTasksChanged:
		if msg.Submitted {
			m.resetForm()
		}
		m.err = nil
		m.refresh()
		return m, nil

	case MsgNotice:
		m.noticeSeq++
		m.notice = msg.Text
		return m, m.clearNoticeCmd()

	case MsgClearNotice:
		if msg.Seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case MsgError:
		m.err = msg.Err
		return m, nil
	}

	return m, nil
}

// handleKeyMsg dispatches a key press by mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.mode.IsInputMode() {
		return m.handleInputMode(msg)
	}

	switch m.mode {
	case ModeHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.mode = ModeNormal
			m.help.ShowAll = false
		}
		return m, nil
	case ModeNormal, ModeInputText, ModeInputDue:
		return m.handleNormalMode(msg)
	}
	return m, nil
}

// handleNormalMode handles keys while the list has focus.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		m.help.ShowAll = true
		return m, nil

	case key.Matches(msg, m.keys.New):
		return m, m.focusField(ModeInputText)

	case key.Matches(msg, m.keys.Edit):
		id := m.SelectedTaskID()
		if id == "" {
			return m, nil
		}
		draft, ok := m.container.Store.BeginEdit(id)
		if !ok {
			return m, nil
		}
		m.textInput.SetValue(draft.Text)
		m.textInput.CursorEnd()
		m.dueInput.SetValue(draft.DueAt.In(m.now.Location()).Format(dueInputLayout))
		m.dueInput.CursorEnd()
		m.editing = id
		m.delegate.editing = id
		return m, m.focusField(ModeInputText)

	case key.Matches(msg, m.keys.Toggle):
		if id := m.SelectedTaskID(); id != "" {
			return m, m.toggleCmd(id)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if id := m.SelectedTaskID(); id != "" {
			return m, m.deleteCmd(id)
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filter = m.filter.Next()
		m.refresh()
		m.taskList.Select(0)
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.err = nil
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.PrevPage, m.keys.NextPage):
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleInputMode handles keys while the form has focus.
func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.blurForm()
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		if m.mode == ModeInputText {
			return m, m.focusField(ModeInputDue)
		}
		return m, m.focusField(ModeInputText)

	case key.Matches(msg, m.keys.Submit):
		return m, m.submitCmd(m.textInput.Value(), m.dueInput.Value())
	}

	var cmd tea.Cmd
	if m.mode == ModeInputDue {
		m.dueInput, cmd = m.dueInput.Update(msg)
	} else {
		m.textInput, cmd = m.textInput.Update(msg)
	}
	return m, cmd
}

// focusField moves keyboard focus to one of the form inputs.
func (m *Model) focusField(mode Mode) tea.Cmd {
	m.mode = mode
	if mode == ModeInputDue {
		m.textInput.Blur()
		return m.dueInput.Focus()
	}
	m.dueInput.Blur()
	return m.textInput.Focus()
}

// blurForm returns focus to the list. Form values and edit state are kept.
func (m *Model) blurForm() {
	m.textInput.Blur()
	m.dueInput.Blur()
	m.mode = ModeNormal
}

// resetForm empties the form after a successful submit.
func (m *Model) resetForm() {
	m.textInput.Reset()
	m.dueInput.Reset()
	m.blurForm()
}

// updateLayoutSizes sizes the list to the space left by the header, form and footer.
func (m *Model) updateLayoutSizes() {
	// App padding (2) + header, blank, two form lines, blank, notice, blank, footer (8)
	const chrome = 10

	listHeight := m.height - chrome
	if listHeight < 3 {
		listHeight = 3
	}
	listWidth := m.width - 4
	if listWidth < 20 {
		listWidth = 20
	}
	m.taskList.SetSize(listWidth, listHeight)
	m.status.SetWidth(listWidth)
}
