package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/runoshun/duelist/internal/app"
	"github.com/runoshun/duelist/internal/domain"
	"github.com/runoshun/duelist/internal/infra/config"
	"github.com/runoshun/duelist/internal/infra/crypto"
	"github.com/runoshun/duelist/internal/usecase"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage duelist configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigTemplateCommand())
	cmd.AddCommand(newConfigInitCommand(c))
	cmd.AddCommand(newConfigKeygenCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Sources, later ones winning:
  1. built-in defaults
  2. global config ($XDG_CONFIG_HOME/duelist/config.toml)
  3. .duelist.toml in the current directory
  4. DUELIST_* environment variables`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ShowConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			// Display loaded files section
			_, _ = fmt.Fprintln(w, "[Loaded from]")
			printConfigInfo(w, out.GlobalConfig)
			printConfigInfo(w, out.LocalConfig)
			_, _ = fmt.Fprintln(w)

			// Display effective config in TOML format
			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.Effective)
		},
	}
}

// printConfigInfo prints one config source line.
func printConfigInfo(w io.Writer, info domain.ConfigInfo) {
	if info.Path == "" {
		return
	}
	if info.Exists {
		_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
	} else {
		_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
	}
}

// formatEffectiveConfig writes cfg in TOML followed by any load warnings.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	rendered, err := config.Render(cfg)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(w, rendered)

	if len(cfg.Warnings) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, "[Warnings]")
		for _, warning := range cfg.Warnings {
			_, _ = fmt.Fprintf(w, "- %s\n", warning)
		}
	}
	return nil
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output the commented configuration template to stdout.

The template does not depend on existing configuration files and works even
if they are broken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprint(cmd.OutOrStdout(), domain.ConfigTemplate())
			return nil
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Global bool
		Force  bool
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file template",
		Long: `Generate a configuration file template.

By default, creates .duelist.toml in the current directory.
With --global, creates the global configuration file at ~/.config/duelist/config.toml.

Error conditions:
- Target file already exists (without --force): error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitConfigInput{
				Global: opts.Global,
				Force:  opts.Force,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.Global, "global", false, "Generate global configuration")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Overwrite an existing file")

	return cmd
}

// newConfigKeygenCommand creates the config keygen subcommand.
func newConfigKeygenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Print a new storage encryption key",
		Long: `Print a random AES-256 key for the git storage backend.

Export it before running duelist to keep the task list encrypted at rest:

  export DUELIST_ENCRYPTION_KEY=$(duelist config keygen)

Tasks written with one key cannot be read with another.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := crypto.GenerateKey()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}
