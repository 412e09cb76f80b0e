package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/neospend-dev/neospend/internal/activity"
	"github.com/neospend-dev/neospend/internal/render"
)

func newHistoryCommand(g *globals) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the activity log, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, g)
			if err != nil {
				return err
			}
			defer a.Close()

			entries, err := activity.Read(a.dir)
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "no activity yet")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %-6s  %s  %s\n",
					e.Timestamp.Local().Format(time.DateTime), e.Action, render.ShortID(e.TransactionID), e.Details)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show only the last n entries")
	return cmd
}
