package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/neospend-dev/neospend/internal/export"
)

func newExportCommand(g *globals) *cobra.Command {
	var category, month, format, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered transactions as CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if format != "csv" && format != "xlsx" {
				return fmt.Errorf("unsupported export format %q (want csv or xlsx)", format)
			}
			if format == "xlsx" && outPath == "" {
				return fmt.Errorf("xlsx export needs --out")
			}

			a, err := openApp(cmd, g)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.selection(category, month); err != nil {
				return err
			}
			snap := a.store.Snapshot()

			write := func(w io.Writer) error {
				if format == "xlsx" {
					return export.WriteXLSX(w, snap)
				}
				return export.WriteCSV(w, snap.Transactions)
			}

			if outPath == "" {
				return write(cmd.OutOrStdout())
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			if err := writeAndClose(f, write); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", len(snap.Transactions), outPath)
			return nil
		},
	}

	addSelectionFlags(cmd, &category, &month)
	cmd.Flags().StringVar(&format, "format", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout, csv only)")
	return cmd
}

// writeAndClose runs write against wc and closes it, reporting the close
// error when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}
