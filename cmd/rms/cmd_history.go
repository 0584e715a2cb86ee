package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"rmscalc/internal/calc"
	"rmscalc/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded results, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Maximum number of results")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(cfg.History.DatabasePath); os.IsNotExist(err) {
		fmt.Fprintf(cmd.OutOrStdout(), "no history recorded (%s does not exist)\n", cfg.History.DatabasePath)
		return nil
	}

	store, err := history.Open(cfg.History.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSOURCE\tFORMULA\tCOUNT\tVALUE")
	for _, rec := range recs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			rec.RunID,
			rec.At.Format(time.RFC3339),
			rec.Source,
			rec.Result.Formula,
			rec.Result.Count,
			calc.FormatValue(rec.Result.Value),
		)
	}
	return w.Flush()
}
