package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/duelist/internal/app"
)

// newTUICommand creates the tui command for launching the interactive TUI.
// It behaves the same as running `duelist` without arguments.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch interactive TUI",
		Long: `Launch the interactive terminal screen for managing tasks.

Type a task and a due expression, then press enter to add it. Select a task
and press e to edit it, space to toggle it, d to delete it. Tab cycles the
filter between all, completed and overdue tasks.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}
}
