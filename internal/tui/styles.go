package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runoshun/duelist/internal/presenter"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color

	// Title/text colors
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color

	// Task state colors
	Open    lipgloss.Color
	Done    lipgloss.Color
	Overdue lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)

	Open:    lipgloss.Color("#74B9FF"), // Light blue
	Done:    lipgloss.Color("#00B894"), // Green
	Overdue: lipgloss.Color("#D63031"), // Red
}

// TaskState is the display state of a row.
type TaskState int

const (
	StateOpen    TaskState = iota // Not completed, not yet due
	StateDone                     // Completed
	StateOverdue                  // Not completed and past due
)

// RowState classifies a row for display.
func RowState(row presenter.Row) TaskState {
	switch {
	case row.Completed:
		return StateDone
	case row.Overdue:
		return StateOverdue
	default:
		return StateOpen
	}
}

// StateIcon returns the checkbox-like icon for a state.
func StateIcon(s TaskState) string {
	switch s {
	case StateDone:
		return "✔"
	case StateOverdue:
		return "!"
	default:
		return "○"
	}
}

// StateText returns the short label for a state.
func StateText(s TaskState) string {
	switch s {
	case StateDone:
		return "done"
	case StateOverdue:
		return "late"
	default:
		return "open"
	}
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header       lipgloss.Style
	FilterActive lipgloss.Style
	FilterOther  lipgloss.Style
	Counts       lipgloss.Style

	// Form
	InputPrompt lipgloss.Style
	FormLabel   lipgloss.Style
	FormEditing lipgloss.Style

	// Task list
	TaskDue            lipgloss.Style
	TaskTitle          lipgloss.Style
	TaskTitleDone      lipgloss.Style
	SelectionIndicator lipgloss.Style
	Empty              lipgloss.Style

	// State badges
	StateOpen    lipgloss.Style
	StateDone    lipgloss.Style
	StateOverdue lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	// Notices
	Notice   lipgloss.Style
	ErrorMsg lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		FilterActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.TitleSelected).
			Underline(true),

		FilterOther: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Counts: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Bold(true),

		FormLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		FormEditing: lipgloss.NewStyle().
			Foreground(Colors.Warning).
			Italic(true),

		TaskDue: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		TaskTitle: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		TaskTitleDone: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Strikethrough(true),

		SelectionIndicator: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected),

		Empty: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		StateOpen: lipgloss.NewStyle().
			Foreground(Colors.Open),

		StateDone: lipgloss.NewStyle().
			Foreground(Colors.Done),

		StateOverdue: lipgloss.NewStyle().
			Foreground(Colors.Overdue).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Padding(0, 1),

		FooterKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		Notice: lipgloss.NewStyle().
			Foreground(Colors.Warning),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),
	}
}

// StateStyle returns the badge style for a state.
func (s Styles) StateStyle(state TaskState) lipgloss.Style {
	switch state {
	case StateDone:
		return s.StateDone
	case StateOverdue:
		return s.StateOverdue
	default:
		return s.StateOpen
	}
}
