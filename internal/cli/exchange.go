package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/duelist/internal/app"
	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/infra/export"
	"github.com/runoshun/duelist/internal/usecase"
)

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format string
		Output string
		Filter string
		Title  string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks to iCalendar or PDF",
		Long: `Write tasks to an exchange format.

Formats:
  ics   iCalendar file with one VTODO per task, for calendar and task apps
  pdf   printable checklist

Without --format the format is taken from the --output file extension.
Without --output the result is written to stdout.

Examples:
  # Calendar file
  duelist export -o tasks.ics

  # Printable list of what is late
  duelist export --format pdf --filter overdue -o late.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			format, err := exportFormat(opts.Format, opts.Output)
			if err != nil {
				return err
			}
			if format == export.FormatYAML {
				return errors.New("yaml output is available through `duelist ls --format yaml`")
			}
			kind, err := domain.ParseFilterKind(opts.Filter)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.Output != "" {
				f, createErr := os.Create(opts.Output)
				if createErr != nil {
					return fmt.Errorf("create output file: %w", createErr)
				}
				defer func() {
					if closeErr := f.Close(); closeErr != nil && err == nil {
						err = fmt.Errorf("close output file: %w", closeErr)
					}
				}()
				w = f
			}

			uc := c.ExportTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ExportTasksInput{
				Writer:     w,
				Format:     format,
				Filter:     kind,
				Title:      opts.Title,
				TimeFormat: c.AppConfig.Display.TimeFormat,
			})
			if err != nil {
				return err
			}

			if opts.Output != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d tasks to %s\n", out.Count, opts.Output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "", "Export format: ics, pdf")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.Filter, "filter", "f", "", "Filter: all, completed, overdue")
	cmd.Flags().StringVar(&opts.Title, "title", "", "PDF heading")

	return cmd
}

// exportFormat picks the explicit format, or derives it from the output path.
func exportFormat(format, output string) (export.Format, error) {
	if format != "" {
		return export.ParseFormat(format)
	}
	if output == "" {
		return export.FormatICS, nil
	}
	return export.FormatFromPath(output)
}

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Format string
		DryRun bool
	}

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Add tasks from a YAML or iCalendar file",
		Long: `Add every task in FILE to the list.

The format is taken from the file extension unless --format is given.

YAML files hold a list of tasks (optionally under a top-level "tasks" key):

  - task: Buy milk
    due: tomorrow 09:00
  - task: File taxes
    due: 2025-04-15 18:00
    completed: true

The output of "duelist ls --format yaml" can be imported as is.
iCalendar files contribute their VTODO components.

All tasks are checked before any is added; one invalid entry aborts the
import. Use --dry-run to check a file without adding anything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, err := importFormat(opts.Format, path)
			if err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer func() { _ = f.Close() }()

			drafts, err := readDrafts(f, format, c.Clock.Now().Location())
			if err != nil {
				return err
			}

			uc := c.ImportTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ImportTasksInput{
				Drafts: drafts,
				DryRun: opts.DryRun,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.DryRun {
				for _, t := range out.Tasks {
					_, _ = fmt.Fprintf(w, "would add: %s (due %s)\n", t.Text, formatDue(c, t))
				}
				_, _ = fmt.Fprintf(w, "%d tasks valid, nothing added\n", len(out.Tasks))
				return nil
			}
			_, _ = fmt.Fprintf(w, "Imported %d tasks from %s\n", len(out.Tasks), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "", "Input format: yaml, ics (default: from extension)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Validate without adding tasks")

	return cmd
}

// importFormat picks the explicit format, or derives it from the input path.
func importFormat(format, path string) (export.Format, error) {
	var (
		f   export.Format
		err error
	)
	if format != "" {
		f, err = export.ParseFormat(format)
	} else {
		f, err = export.FormatFromPath(path)
	}
	if err != nil {
		return "", err
	}
	if f == export.FormatPDF {
		return "", fmt.Errorf("%w: pdf cannot be imported", domain.ErrUnknownFormat)
	}
	return f, nil
}

// readDrafts decodes r in the given format.
func readDrafts(r io.Reader, format export.Format, loc *time.Location) ([]domain.TaskDraft, error) {
	if format == export.FormatICS {
		return export.ReadICS(r, loc)
	}
	return export.ReadYAML(r)
}
