package cli

import (
	"fmt"

	"github.com/runoshun/initiative/internal/app"
	"github.com/runoshun/initiative/internal/usecase"
	"github.com/spf13/cobra"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the encounter store",
		Long: `Initialize the encounter store for this directory.

Inside a git repository the data directory is .git/initiative; elsewhere it
is .initiative in the current directory. The command creates:
- the encounter store for the configured backend
- logs/: directory for encounter logs

Running init again on an initialized store only repairs missing pieces.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitStoreUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitStoreInput{
				DataDir: c.Config.DataDir,
			})
			if err != nil {
				return err
			}

			if out.AlreadyInitialized {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Already initialized in %s\n", out.DataDir)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized initiative in %s\n", out.DataDir)
			return nil
		},
	}
}
