package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusLineInfo contains information for rendering the status line.
// Fields are ordered to minimize memory padding.
type StatusLineInfo struct {
	Pagination string // Optional pagination info (e.g., "1/3")
	Counts     string // Task totals
	KeyHints   []KeyHint
}

// KeyHint represents a key and its description.
type KeyHint struct {
	Key  string
	Desc string
}

// StatusLine renders a unified status line at the bottom of the screen.
// Fields are ordered to minimize memory padding.
type StatusLine struct {
	styles *Styles
	width  int
}

// NewStatusLine creates a new StatusLine with the given width and styles.
func NewStatusLine(width int, styles *Styles) *StatusLine {
	return &StatusLine{
		width:  width,
		styles: styles,
	}
}

// SetWidth updates the status line width.
func (s *StatusLine) SetWidth(width int) {
	s.width = width
}

// Render renders the status line with the given info.
func (s *StatusLine) Render(info StatusLineInfo) string {
	keyStyle := s.styles.FooterKey

	// Build key hints
	hints := make([]string, 0, len(info.KeyHints))
	for _, h := range info.KeyHints {
		hints = append(hints, keyStyle.Render(h.Key)+" "+h.Desc)
	}
	content := strings.Join(hints, "  ")

	// Account for padding
	contentWidth := s.width - 2

	rightContent := info.Counts
	if info.Pagination != "" {
		rightContent = info.Pagination + "  " + rightContent
	}
	rightLen := lipgloss.Width(rightContent)
	contentLen := lipgloss.Width(content)

	// Truncate content if needed
	maxContentWidth := contentWidth - rightLen - 2
	if contentLen > maxContentWidth {
		if maxContentWidth <= 3 {
			content = "..."
		} else {
			truncateStyle := lipgloss.NewStyle().MaxWidth(maxContentWidth - 3)
			content = truncateStyle.Render(content) + "..."
		}
		contentLen = lipgloss.Width(content)
	}

	spacing := contentWidth - contentLen - rightLen
	if spacing < 1 {
		spacing = 1
	}

	fullContent := content + strings.Repeat(" ", spacing) + rightContent
	return s.styles.Footer.Width(s.width).Render(fullContent)
}

// GetStatusInfo returns status line info for the TUI model.
func (m *Model) GetStatusInfo() StatusLineInfo {
	info := StatusLineInfo{
		Counts: fmt.Sprintf("%d tasks · %d done · %d overdue",
			m.counts.Total, m.counts.Completed, m.counts.Overdue),
	}
	if m.taskList.Paginator.TotalPages > 1 {
		info.Pagination = fmt.Sprintf("%d/%d", m.taskList.Paginator.Page+1, m.taskList.Paginator.TotalPages)
	}

	switch m.mode {
	case ModeNormal:
		info.KeyHints = []KeyHint{
			{Key: "n", Desc: "new"},
			{Key: "e", Desc: "edit"},
			{Key: "space", Desc: "done"},
			{Key: "d", Desc: "delete"},
			{Key: "tab", Desc: "filter"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		}
	case ModeInputText, ModeInputDue:
		info.KeyHints = []KeyHint{
			{Key: "enter", Desc: "save"},
			{Key: "tab", Desc: "next field"},
			{Key: "esc", Desc: "back"},
		}
	case ModeHelp:
		info.KeyHints = []KeyHint{
			{Key: "?", Desc: "close help"},
		}
	}

	return info
}
