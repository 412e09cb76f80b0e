package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neospend-dev/neospend/internal/render"
)

func newListCommand(g *globals) *cobra.Command {
	var category, month string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions, most recent first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, g)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.selection(category, month); err != nil {
				return err
			}
			return render.Transactions(cmd.OutOrStdout(), a.store.Snapshot().Transactions)
		},
	}

	addSelectionFlags(cmd, &category, &month)
	return cmd
}

func newSummaryCommand(g *globals) *cobra.Command {
	var category, month string
	var slices bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show totals, spending progress and the expense breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, g)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.selection(category, month); err != nil {
				return err
			}
			snap := a.store.Snapshot()
			if err := render.Summary(cmd.OutOrStdout(), snap); err != nil {
				return err
			}
			if slices {
				fmt.Fprintln(cmd.OutOrStdout())
				return render.Slices(cmd.OutOrStdout(), snap.Slices)
			}
			return nil
		},
	}

	addSelectionFlags(cmd, &category, &month)
	cmd.Flags().BoolVar(&slices, "slices", false, "also print donut chart angles")
	return cmd
}

func newMonthsCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "List the months that have transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, g)
			if err != nil {
				return err
			}
			defer a.Close()

			for _, m := range a.store.Snapshot().Months {
				fmt.Fprintln(cmd.OutOrStdout(), m)
			}
			return nil
		},
	}
}

func newCategoriesCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the configured categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, g)
			if err != nil {
				return err
			}
			defer a.Close()

			for _, c := range a.cats.All() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}
