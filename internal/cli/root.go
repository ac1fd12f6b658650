// Package cli provides the command-line interface for duelist.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/duelist/internal/app"
	"github.com/runoshun/duelist/internal/tui"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupTask  = "task"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for duelist.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "duelist",
		Short: "Keep a to-do list with due dates",
		Long: `duelist keeps a list of tasks, each with a due date and time.

Tasks are stored locally and survive restarts. Unfinished tasks whose
due time has passed are shown as overdue.

Run without arguments to open the interactive screen.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
	)

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	// Task management commands
	addCmd := newAddCommand(c)
	addCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupTask

	doneCmd := newDoneCommand(c)
	doneCmd.GroupID = groupTask

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupTask

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupTask

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupTask

	// TUI command
	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupTask

	root.AddCommand(
		configCmd,
		addCmd,
		listCmd,
		editCmd,
		doneCmd,
		rmCmd,
		exportCmd,
		importCmd,
		tuiCmd,
	)

	return root
}

// launchTUI runs the interactive screen until the user quits.
func launchTUI(c *app.Container) error {
	if c == nil {
		return fmt.Errorf("launch tui: no task store available")
	}
	return tui.Run(c)
}
