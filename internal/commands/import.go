package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/neospend-dev/neospend/internal/importer"
	"github.com/neospend-dev/neospend/internal/logging"
)

func newImportCommand(g *globals) *cobra.Command {
	var format, category string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import transactions from a bank or neospend CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := importer.DefaultRegistry()
			parser := registry.Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q (available: %v)", format, registry.Formats())
			}

			a, err := openApp(cmd, g)
			if err != nil {
				return err
			}
			defer a.Close()

			fallback := ""
			if category != "" {
				fallback, err = a.cats.Resolve(category)
				if err != nil {
					return err
				}
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			rows, err := parser.Parse(f)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			txs, skipped := importer.Convert(rows, a.cats, fallback)
			log := logging.FromContext(cmd.Context()).WithComponent("import")
			for _, s := range skipped {
				log.Warn("row skipped", "file", args[0], "row", s.Row, "reason", s.Reason)
			}

			added, err := a.store.AddAll(cmd.Context(), txs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d of %d rows from %s", len(added), len(rows), filepath.Base(args[0]))
			if dup := len(txs) - len(added); dup > 0 {
				fmt.Fprintf(out, " (%d already present)", dup)
			}
			if len(skipped) > 0 {
				fmt.Fprintf(out, " (%d skipped)", len(skipped))
			}
			fmt.Fprintln(out)

			if len(added) == 0 {
				return nil
			}
			return a.finish(cmd.Context(), fmt.Sprintf("import: %d transactions from %s", len(added), filepath.Base(args[0])))
		},
	}

	cmd.Flags().StringVar(&format, "format", "chase", "file format: chase or neospend")
	cmd.Flags().StringVar(&category, "category", "", "category for rows that have none")
	return cmd
}
