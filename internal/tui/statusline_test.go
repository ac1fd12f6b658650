package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusLine_Render(t *testing.T) {
	styles := DefaultStyles()
	sl := NewStatusLine(80, &styles)

	out := sl.Render(StatusLineInfo{
		Counts:   "2 tasks · 1 done · 0 overdue",
		KeyHints: []KeyHint{{Key: "n", Desc: "new"}, {Key: "q", Desc: "quit"}},
	})

	assert.Contains(t, out, "n new")
	assert.Contains(t, out, "q quit")
	assert.Contains(t, out, "2 tasks · 1 done · 0 overdue")
	assert.Equal(t, 80, lipgloss.Width(out))
}

func TestStatusLine_Render_TruncatesHints(t *testing.T) {
	styles := DefaultStyles()
	sl := NewStatusLine(40, &styles)

	hints := make([]KeyHint, 0, 10)
	for range 10 {
		hints = append(hints, KeyHint{Key: "x", Desc: "something"})
	}
	out := sl.Render(StatusLineInfo{Counts: "3 tasks", KeyHints: hints})

	assert.Contains(t, out, "...")
	assert.Contains(t, out, "3 tasks")
	assert.False(t, strings.Contains(out, "\n"), "status line stays on one line")
}

func TestModel_GetStatusInfo_ByMode(t *testing.T) {
	m, _, _, _ := newTestModel(t)

	info := m.GetStatusInfo()
	assert.Equal(t, "n", info.KeyHints[0].Key)
	assert.Equal(t, "0 tasks · 0 done · 0 overdue", info.Counts)

	press(m, keyRunes("n"))
	info = m.GetStatusInfo()
	assert.Equal(t, "enter", info.KeyHints[0].Key)
}
