package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/duelist/internal/app"
	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/presenter"
	"github.com/runoshun/duelist/internal/usecase"
)

// dueInputLayout is used to fill the due field when editing.
// duedate.Parse reads it back unchanged.
const dueInputLayout = "2006-01-02 15:04"

// noticeTTL is how long a notice stays on screen.
const noticeTTL = 5 * time.Second

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	config    *domain.Config
	delegate  *taskDelegate
	status    *StatusLine
	err       error

	// Components (structs with pointers)
	keys     KeyMap
	styles   Styles
	help     help.Model
	taskList list.Model

	// Input state (large structs)
	textInput textinput.Model
	dueInput  textinput.Model

	// State
	now     time.Time
	counts  presenter.Counts
	filter  domain.FilterKind
	editing string // id of the task loaded into the form
	notice  string

	// Numeric state (smaller types last)
	mode      Mode
	width     int
	height    int
	noticeSeq int
}

// New creates a new TUI Model with the given container.
func New(c *app.Container) *Model {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 500
	ti.Prompt = ""

	di := textinput.New()
	di.Placeholder = "now, tomorrow 09:00, in 3 days, 2025-06-01 18:00"
	di.CharLimit = 100
	di.Prompt = ""

	cfg := c.AppConfig
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}
	filter, err := domain.ParseFilterKind(cfg.Display.DefaultFilter)
	if err != nil {
		filter = domain.FilterAll
	}

	styles := DefaultStyles()
	delegate := newTaskDelegate(styles)
	taskList := list.New([]list.Item{}, delegate, 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(false)
	taskList.SetFilteringEnabled(false)
	taskList.DisableQuitKeybindings()

	m := &Model{
		container: c,
		config:    cfg,
		delegate:  delegate,
		keys:      DefaultKeyMap(),
		styles:    styles,
		help:      help.New(),
		taskList:  taskList,
		textInput: ti,
		dueInput:  di,
		filter:    filter,
		mode:      ModeNormal,
	}
	m.status = NewStatusLine(0, &m.styles)
	m.refresh()
	return m
}

// Run shows the TUI until the user quits. Store notices are routed to the
// notice line while it runs.
func Run(c *app.Container) error {
	m := New(c)
	p := tea.NewProgram(m, tea.WithAltScreen())

	c.Notices.Attach(domain.NotifierFunc(func(msg string) {
		p.Send(MsgNotice{Text: msg})
	}))
	defer c.Notices.Attach(nil)

	_, err := p.Run()
	return err
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

// refreshInterval returns the overdue re-check period.
func (m *Model) refreshInterval() time.Duration {
	if d := m.config.Display.RefreshInterval; d > 0 {
		return d
	}
	return domain.DefaultRefreshInterval
}

// tick schedules the next overdue re-check.
func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.refreshInterval(), func(t time.Time) tea.Msg {
		return MsgTick{Time: t}
	})
}

// refresh rebuilds the visible rows from the store at the current time.
func (m *Model) refresh() {
	out, err := m.container.ListTasksUseCase().Execute(context.Background(), usecase.ListTasksInput{
		Filter:     m.filter,
		TimeFormat: m.config.Display.TimeFormat,
	})
	if err != nil {
		m.err = err
		return
	}

	m.now = out.Now
	m.counts = out.Counts
	items := make([]list.Item, 0, len(out.Rows))
	for _, row := range out.Rows {
		items = append(items, taskItem{row: row})
	}
	_ = m.taskList.SetItems(items)

	m.editing = m.container.Store.Edit().TaskID
	m.delegate.editing = m.editing
}

// SelectedTaskID returns the id of the highlighted task, or "" if none.
func (m *Model) SelectedTaskID() string {
	item, ok := m.taskList.SelectedItem().(taskItem)
	if !ok {
		return ""
	}
	return item.row.ID
}

// Filter returns the active filter.
func (m *Model) Filter() domain.FilterKind {
	return m.filter
}

// Mode returns the current UI mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// Notice returns the message on the notice line.
func (m *Model) Notice() string {
	return m.notice
}

// submitCmd adds or updates a task from the form values.
func (m *Model) submitCmd(text, due string) tea.Cmd {
	uc := m.container.SubmitTaskUseCase()
	return func() tea.Msg {
		_, err := uc.Execute(context.Background(), usecase.SubmitTaskInput{Text: text, Due: due})
		if errors.Is(err, domain.ErrEmptyTask) {
			// Reported through the notice relay.
			return nil
		}
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksChanged{Submitted: true}
	}
}

// toggleCmd flips the completion flag of a task.
func (m *Model) toggleCmd(id string) tea.Cmd {
	uc := m.container.CompleteTaskUseCase()
	return func() tea.Msg {
		_, err := uc.Execute(context.Background(), usecase.CompleteTaskInput{TaskID: id})
		return settled(err)
	}
}

// deleteCmd removes a task.
func (m *Model) deleteCmd(id string) tea.Cmd {
	uc := m.container.DeleteTaskUseCase()
	return func() tea.Msg {
		_, err := uc.Execute(context.Background(), usecase.DeleteTaskInput{TaskID: id})
		return settled(err)
	}
}

// settled maps a mutation result to a message. A task that vanished between
// render and key press is not an error.
func settled(err error) tea.Msg {
	if err != nil && !errors.Is(err, domain.ErrTaskNotFound) {
		return MsgError{Err: err}
	}
	return MsgTasksChanged{}
}

// clearNoticeCmd clears the notice after noticeTTL unless a newer one replaced it.
func (m *Model) clearNoticeCmd() tea.Cmd {
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return MsgClearNotice{Seq: seq}
	})
}
