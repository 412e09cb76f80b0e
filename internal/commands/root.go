package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neospend-dev/neospend/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var g globals

	rootCmd := &cobra.Command{
		Use:     "neospend",
		Short:   "Personal income and expense tracker",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.dir, "dir", ".", "project directory")

	rootCmd.AddCommand(
		newInitCommand(),
		newAddCommand(&g),
		newEditCommand(&g),
		newDeleteCommand(&g),
		newListCommand(&g),
		newSummaryCommand(&g),
		newMonthsCommand(&g),
		newCategoriesCommand(&g),
		newExportCommand(&g),
		newImportCommand(&g),
		newHistoryCommand(&g),
	)

	return rootCmd
}
