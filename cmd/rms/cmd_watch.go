package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rmscalc/internal/logging"
	"rmscalc/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Recompute whenever FILE changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r, closeFn, err := newRunner(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	w, err := watch.New(args[0], r, cfg.GetWatchDebounce())
	if err != nil {
		return err
	}
	defer w.Stop()

	w.OnError = func(err error) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}

	// Show the current value before waiting for changes; a bad file is
	// reported but does not stop the watch.
	_ = w.RunOnce(ctx)

	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()

	stats := w.Stats()
	logging.Get(logging.CategoryWatch).Info("watch stopped", zap.Int("runs", stats.Runs), zap.Int("errors", stats.Errors))
	return nil
}
