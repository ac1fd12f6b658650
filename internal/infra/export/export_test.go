package export

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/presenter"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"ics", FormatICS},
		{"ICAL", FormatICS},
		{"pdf", FormatPDF},
		{"yml", FormatYAML},
		{" yaml ", FormatYAML},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("csv")
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestFormatFromPath(t *testing.T) {
	got, err := FormatFromPath("/tmp/backup.tasks.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, got)

	_, err = FormatFromPath("README")
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestICS_RoundTrip(t *testing.T) {
	due := time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)
	tasks := []domain.Task{
		{ID: "a", Text: "Pay rent", DueAt: due},
		{ID: "b", Text: "Call mom, then dad", DueAt: due.Add(time.Hour), Completed: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, tasks, due))

	out := buf.String()
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "BEGIN:VTODO")
	assert.Contains(t, out, "UID:a")
	assert.Contains(t, out, "DUE:20250201T093000Z")
	assert.Contains(t, out, "STATUS:COMPLETED")
	assert.Contains(t, out, "PRODID:"+ProductID)

	drafts, err := ReadICS(strings.NewReader(out), time.UTC)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, domain.TaskDraft{Text: "Pay rent", Due: "2025-02-01T09:30:00Z"}, drafts[0])
	assert.Equal(t, domain.TaskDraft{Text: "Call mom, then dad", Due: "2025-02-01T10:30:00Z", Completed: true}, drafts[1])
}

func TestReadICS_SkipsEventsAndEmptySummaries(t *testing.T) {
	in := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
		"BEGIN:VEVENT",
		"UID:e1",
		"DTSTAMP:20250101T000000Z",
		"DTSTART:20250101T100000Z",
		"SUMMARY:Meeting",
		"END:VEVENT",
		"BEGIN:VTODO",
		"UID:t1",
		"DTSTAMP:20250101T000000Z",
		"SUMMARY:No due date",
		"END:VTODO",
		"BEGIN:VTODO",
		"UID:t2",
		"DTSTAMP:20250101T000000Z",
		"END:VTODO",
		"END:VCALENDAR",
		"",
	}, "\r\n")

	drafts, err := ReadICS(strings.NewReader(in), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []domain.TaskDraft{{Text: "No due date"}}, drafts)
}

func TestReadICS_Invalid(t *testing.T) {
	_, err := ReadICS(strings.NewReader("BEGIN:VCALENDAR\r\nBROKEN"), time.UTC)
	assert.Error(t, err)
}

func TestWritePDF(t *testing.T) {
	rows := []presenter.Row{
		{ID: "1", Text: "Beli susu", Due: "2025-01-01 10:00", Overdue: true},
		{ID: "2", Text: "Café", Due: "2025-01-02 10:00", Completed: true},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, "Tasks", rows))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "%%EOF")
}

func TestWritePDF_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, "Tasks", nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestRenderPDF_WrapsLongText(t *testing.T) {
	short := renderPDF("Tasks", []presenter.Row{{ID: "1", Text: "Short", Due: "2025-01-01 10:00"}})
	long := renderPDF("Tasks", []presenter.Row{{ID: "1", Text: strings.Repeat("long task text ", 30), Due: "2025-01-01 10:00"}})

	require.NoError(t, short.Error())
	require.NoError(t, long.Error())
	assert.Greater(t, long.GetY(), short.GetY()+pdfLineHeight)
	assert.Equal(t, 1, long.PageNo())
}

func TestRenderPDF_Pages(t *testing.T) {
	rows := make([]presenter.Row, 80)
	for i := range rows {
		rows[i] = presenter.Row{ID: fmt.Sprint(i), Text: fmt.Sprintf("Task %d", i), Due: "2025-01-01 10:00"}
	}

	pdf := renderPDF("Tasks", rows)

	require.NoError(t, pdf.Error())
	assert.Greater(t, pdf.PageNo(), 1)
	_, pageHeight := pdf.GetPageSize()
	_, bottom := pdf.GetAutoPageBreak()
	assert.LessOrEqual(t, pdf.GetY(), pageHeight-bottom)
}

func TestReadYAML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []domain.TaskDraft
	}{
		{
			name: "bare list",
			in: `
- task: Buy milk
  due: tomorrow 09:00
- task: Pay rent
  due: "2025-02-01"
  completed: true
`,
			want: []domain.TaskDraft{
				{Text: "Buy milk", Due: "tomorrow 09:00"},
				{Text: "Pay rent", Due: "2025-02-01", Completed: true},
			},
		},
		{
			name: "tasks key",
			in:   "tasks:\n  - task: Walk dog\n",
			want: []domain.TaskDraft{{Text: "Walk dog"}},
		},
		{
			name: "empty document",
			in:   "",
			want: nil,
		},
		{
			name: "comments only",
			in:   "# - task: not yet\n",
			want: nil,
		},
		{
			name: "null document",
			in:   "~\n",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadYAML(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadYAML_Invalid(t *testing.T) {
	for _, in := range []string{"just a string", "- task: [unclosed", "- task: {nested: map}"} {
		_, err := ReadYAML(strings.NewReader(in))
		assert.Error(t, err, in)
	}
}
