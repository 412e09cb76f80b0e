package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neospend-dev/neospend/internal/entry"
	"github.com/neospend-dev/neospend/internal/render"
)

func newAddCommand(g *globals) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add <name> <amount>",
		Short: "Record an income (positive) or expense (negative)",
		Example: `  neospend add "Salário" 3500
  neospend add --category Alimentação -- "Mercado" -85,40`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, g)
			if err != nil {
				return err
			}
			defer a.Close()

			tx, err := a.form.Create(entry.Draft{Name: args[0], Amount: args[1], Category: category})
			if err != nil {
				return err
			}
			if err := a.store.Add(cmd.Context(), tx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s %s [%s]\n", render.ShortID(tx.ID), tx.Name, render.Money(tx.Amount), tx.Category)
			return a.finish(cmd.Context(), fmt.Sprintf("add: %s %s", tx.Name, render.Money(tx.Amount)))
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category (default: first configured category)")
	return cmd
}

func newEditCommand(g *globals) *cobra.Command {
	var d entry.Draft

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the name, amount or category of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if d.Name == "" && d.Amount == "" && d.Category == "" {
				return fmt.Errorf("nothing to change: pass --name, --amount or --category")
			}

			a, err := openApp(cmd, g)
			if err != nil {
				return err
			}
			defer a.Close()

			cur, err := a.store.Lookup(args[0])
			if err != nil {
				return err
			}
			edited, err := a.form.Edit(cur, d)
			if err != nil {
				return err
			}
			tx, err := a.store.Update(cmd.Context(), edited)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s %s [%s]\n", render.ShortID(tx.ID), tx.Name, render.Money(tx.Amount), tx.Category)
			return a.finish(cmd.Context(), "edit: "+tx.Name)
		},
	}

	cmd.Flags().StringVar(&d.Name, "name", "", "new name")
	cmd.Flags().StringVar(&d.Amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&d.Category, "category", "", "new category")
	return cmd
}

func newDeleteCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a transaction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, g)
			if err != nil {
				return err
			}
			defer a.Close()

			tx, err := a.store.Lookup(args[0])
			if err != nil {
				return err
			}
			if _, err := a.store.Delete(cmd.Context(), tx.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", render.ShortID(tx.ID), tx.Name)
			return a.finish(cmd.Context(), "delete: "+tx.Name)
		},
	}
}
