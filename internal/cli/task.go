package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/duelist/internal/app"
	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/presenter"
	"github.com/runoshun/duelist/internal/usecase"
)

// List output formats.
const (
	listFormatText = "text"
	listFormatJSON = "json"
	listFormatYAML = "yaml"
)

// newAddCommand creates the add command for creating tasks.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Due    string
		Editor bool
	}

	cmd := &cobra.Command{
		Use:   "add [TEXT...]",
		Short: "Add a new task",
		Long: `Add a new task with a due date.

The task text is every argument joined with spaces. The due date defaults to
the current time.

Due expressions:
  now, today, tomorrow        optionally followed by HH:MM
  in N days|weeks|months      optionally followed by HH:MM
  2025-03-01 18:00            or most other common date layouts

Examples:
  # Due right now
  duelist add Buy milk

  # Due tomorrow morning
  duelist add Call the plumber --due "tomorrow 09:00"

  # Due next week
  duelist add Renew passport --due "in 1 week"

  # Write several tasks as YAML in $EDITOR
  duelist add --editor`,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.Editor {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Editor {
				return addFromEditor(cmd, c)
			}

			uc := c.NewTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.NewTaskInput{
				Text: strings.Join(args, " "),
				Due:  opts.Due,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added task %s (due %s)\n",
				domain.ShortID(out.Task.ID), formatDue(c, out.Task))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Due, "due", "", "Due date expression (default: now)")
	cmd.Flags().BoolVarP(&opts.Editor, "editor", "e", false, "Write tasks as YAML in $EDITOR")
	cmd.MarkFlagsMutuallyExclusive("due", "editor")

	return cmd
}

// addFromEditor adds every task the user writes in the editor buffer.
func addFromEditor(cmd *cobra.Command, c *app.Container) error {
	drafts, err := editDrafts()
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if len(drafts) == 0 {
		_, _ = fmt.Fprintln(w, "No tasks added")
		return nil
	}

	uc := c.ImportTasksUseCase()
	out, err := uc.Execute(cmd.Context(), usecase.ImportTasksInput{Drafts: drafts})
	if err != nil {
		return err
	}
	for _, t := range out.Tasks {
		_, _ = fmt.Fprintf(w, "Added task %s (due %s)\n", domain.ShortID(t.ID), formatDue(c, t))
	}
	return nil
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Filter string
		Format string
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `Display tasks in insertion order.

Overdue is evaluated at the moment the command runs: a task is overdue when it
is not completed and its due time has passed.

Filters:
  all         every task (default, or [display] default_filter)
  completed   completed tasks only
  overdue     unfinished tasks past their due time

Formats:
  text   aligned table with a summary line
  json   array of {id, task, due, completed, overdue}
  yaml   same fields as json

Examples:
  # Everything
  duelist ls

  # What is late
  duelist ls --filter overdue

  # Machine-readable
  duelist ls --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := opts.Filter
			if filter == "" {
				filter = c.AppConfig.Display.DefaultFilter
			}
			kind, err := domain.ParseFilterKind(filter)
			if err != nil {
				return err
			}

			uc := c.ListTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListTasksInput{
				Filter:     kind,
				TimeFormat: c.AppConfig.Display.TimeFormat,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch opts.Format {
			case listFormatText, "":
				printTaskList(w, out, kind)
				return nil
			case listFormatJSON:
				return printTaskListJSON(w, out.Rows)
			case listFormatYAML:
				return printTaskListYAML(w, out.Rows)
			}
			return fmt.Errorf("%w: %q", domain.ErrUnknownFormat, opts.Format)
		},
	}

	cmd.Flags().StringVarP(&opts.Filter, "filter", "f", "", "Filter: all, completed, overdue")
	cmd.Flags().StringVar(&opts.Format, "format", listFormatText, "Output format: text, json, yaml")

	return cmd
}

// newEditCommand creates the edit command.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Due string
	}

	cmd := &cobra.Command{
		Use:   "edit ID [TEXT...]",
		Short: "Edit a task's text or due date",
		Long: `Replace the text and/or due date of a task.

ID may be any unique prefix of the task id. Omitted values keep their current
setting. The completion flag is never changed by edit.

Examples:
  # Rename
  duelist edit 0b6f4c1e Buy oat milk

  # Move the due date
  duelist edit 0b6f --due "tomorrow 18:00"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(c, args[0])
			if err != nil {
				return err
			}

			in := usecase.EditTaskInput{TaskID: id}
			if len(args) > 1 {
				text := strings.Join(args[1:], " ")
				in.Text = &text
			}
			if cmd.Flags().Changed("due") {
				in.Due = &opts.Due
			}
			if in.Text == nil && in.Due == nil {
				return fmt.Errorf("nothing to change: give new text or --due")
			}

			uc := c.EditTaskUseCase()
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s (due %s)\n",
				domain.ShortID(out.Task.ID), out.Task.Text, formatDue(c, out.Task))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Due, "due", "", "New due date expression")

	return cmd
}

// newDoneCommand creates the done command, which toggles completion.
func newDoneCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "done ID",
		Aliases: []string{"toggle"},
		Short:   "Toggle a task between open and completed",
		Long: `Mark an open task completed, or reopen a completed one.

ID may be any unique prefix of the task id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(c, args[0])
			if err != nil {
				return err
			}

			uc := c.CompleteTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.CompleteTaskInput{TaskID: id})
			if err != nil {
				return err
			}

			state := "reopened"
			if out.Task.Completed {
				state = "completed"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s %s\n", domain.ShortID(out.Task.ID), state)
			return nil
		},
	}
}

// newRmCommand creates the rm command.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Long: `Delete a task permanently.

ID may be any unique prefix of the task id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(c, args[0])
			if err != nil {
				return err
			}

			uc := c.DeleteTaskUseCase()
			if _, err := uc.Execute(cmd.Context(), usecase.DeleteTaskInput{TaskID: id}); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", domain.ShortID(id))
			return nil
		},
	}
}

// resolveTaskID expands a full id or unique id prefix.
func resolveTaskID(c *app.Container, ref string) (string, error) {
	return domain.ResolveID(c.Store.Tasks(), ref)
}

// formatDue renders a task's due time with the configured layout.
func formatDue(c *app.Container, task domain.Task) string {
	return presenter.NewRow(task, c.Clock.Now(), c.AppConfig.Display.TimeFormat).Due
}

// listStyles colors rows of the text listing.
type listStyles struct {
	completed lipgloss.Style
	overdue   lipgloss.Style
	header    lipgloss.Style
	summary   lipgloss.Style
}

// newListStyles builds styles for w. Colors are dropped when w is not a terminal.
func newListStyles(w io.Writer) listStyles {
	r := lipgloss.NewRenderer(w)
	return listStyles{
		completed: r.NewStyle().Strikethrough(true).Faint(true),
		overdue:   r.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true),
		header:    r.NewStyle().Bold(true),
		summary:   r.NewStyle().Faint(true),
	}
}

// printTaskList prints an aligned table followed by a summary line.
func printTaskList(w io.Writer, out *usecase.ListTasksOutput, kind domain.FilterKind) {
	styles := newListStyles(w)

	if len(out.Rows) == 0 {
		if out.Counts.Total == 0 {
			_, _ = fmt.Fprintln(w, "No tasks yet")
		} else {
			_, _ = fmt.Fprintf(w, "No tasks match filter %q\n", kind)
		}
		return
	}

	// Align first, then color whole lines so escape codes do not skew columns.
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tDUE\tSTATUS\tTASK")
	for _, row := range out.Rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", domain.ShortID(row.ID), row.Due, rowStatus(row), cellText(row.Text))
	}
	_ = tw.Flush()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	_, _ = fmt.Fprintln(w, styles.header.Render(lines[0]))
	for i, line := range lines[1:] {
		row := out.Rows[i]
		switch {
		case row.Completed:
			line = styles.completed.Render(line)
		case row.Overdue:
			line = styles.overdue.Render(line)
		}
		_, _ = fmt.Fprintln(w, line)
	}

	_, _ = fmt.Fprintln(w, styles.summary.Render(fmt.Sprintf("%s: %d shown, %d total, %d completed, %d overdue",
		kind.Display(), len(out.Rows), out.Counts.Total, out.Counts.Completed, out.Counts.Overdue)))
}

// cellEscaper keeps a task on one table line. Newlines are shown escaped;
// tabwriter control characters become spaces.
var cellEscaper = strings.NewReplacer(
	"\r\n", "\\n",
	"\n", "\\n",
	"\r", "\\n",
	"\t", " ",
	"\v", " ",
	"\f", " ",
)

// cellText returns text safe to place in the last table column.
func cellText(text string) string {
	return cellEscaper.Replace(text)
}

// rowStatus returns the STATUS column value.
func rowStatus(row presenter.Row) string {
	switch {
	case row.Completed:
		return "done"
	case row.Overdue:
		return "overdue"
	default:
		return "open"
	}
}

// printTaskListJSON prints rows as an indented JSON array.
func printTaskListJSON(w io.Writer, rows []presenter.Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return nil
}

// printTaskListYAML prints rows as a YAML sequence.
func printTaskListYAML(w io.Writer, rows []presenter.Row) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return enc.Close()
}
