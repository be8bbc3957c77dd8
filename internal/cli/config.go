package cli

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/initiative/internal/app"
	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage initiative configuration files and settings.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))
	cmd.AddCommand(newConfigEditCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display effective configuration after merging all sources.

Shows which config files were loaded and the final merged configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ShowConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowConfigInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()

			_, _ = fmt.Fprintln(w, "[Loaded from]")
			printConfigSource(w, out.GlobalConfig)
			printConfigSource(w, out.RepoConfig)
			_, _ = fmt.Fprintln(w)

			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.Effective)
		},
	}
}

func printConfigSource(w io.Writer, info domain.ConfigInfo) {
	if info.Exists {
		_, _ = fmt.Fprintf(w, "- %s\n", info.Path)
		return
	}
	_, _ = fmt.Fprintf(w, "- %s (not found)\n", info.Path)
}

// formatEffectiveConfig writes the merged config in TOML format.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("format config: %w", err)
	}
	_, _ = w.Write(data)
	return nil
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file template",
		Long: `Generate a configuration file template.

By default, creates the repository configuration file in the data directory
(.git/initiative/config.toml inside git).
With --global, creates the global configuration file at ~/.config/initiative/config.toml.

Error conditions:
- Target file already exists: error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitConfigUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitConfigInput{
				Global: global,
				Config: c.AppConfig,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Generate global configuration")

	return cmd
}

// newConfigEditCommand creates the config edit subcommand.
func newConfigEditCommand(c *app.Container) *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open configuration file in $EDITOR",
		Long: `Open the repository configuration file in $EDITOR (or $VISUAL).

The file is created from the template first if it does not exist yet.
With --global, edits the global configuration file instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := c.ConfigManager.GetRepoConfigInfo()
			if global {
				info = c.ConfigManager.GetGlobalConfigInfo()
			}

			if !info.Exists {
				out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{
					Global: global,
					Config: c.AppConfig,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			}

			return openEditorFunc(info.Path)
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Edit global configuration")

	return cmd
}
