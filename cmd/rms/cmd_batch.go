package main

import (
	"github.com/spf13/cobra"

	"rmscalc/internal/batch"
)

var batchJobs int

var batchCmd = &cobra.Command{
	Use:   "batch FILE...",
	Short: "Compute the RMS of every file, concurrently",
	Long: `Loads and computes each file concurrently, then displays the results in
the order the files were given. Any unreadable or invalid file aborts the
batch before anything is displayed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&batchJobs, "jobs", "j", -1, "Files evaluated at once (0 = unlimited, default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	r, closeFn, err := newRunner(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	jobs := cfg.Batch.Jobs
	if batchJobs >= 0 {
		jobs = batchJobs
	}

	_, err = batch.Evaluate(cmd.Context(), r, args, jobs)
	return err
}
