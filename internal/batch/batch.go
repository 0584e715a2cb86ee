// Package batch evaluates many input files concurrently.
package batch

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rmscalc/internal/display"
	"rmscalc/internal/input"
	"rmscalc/internal/logging"
	"rmscalc/internal/runner"
)

// Loader reads the sequence stored at path.
type Loader func(path string) ([]float64, error)

// Evaluate loads and computes every file with at most jobs running at once
// (jobs <= 0 means no limit), then displays the records in the order the
// files were given. The first load error cancels the remaining work and is
// returned; nothing is displayed in that case.
func Evaluate(ctx context.Context, r *runner.Runner, files []string, jobs int) ([]display.Record, error) {
	return EvaluateWith(ctx, r, files, jobs, input.LoadFile)
}

// EvaluateWith is Evaluate with a custom loader.
func EvaluateWith(ctx context.Context, r *runner.Runner, files []string, jobs int, load Loader) ([]display.Record, error) {
	log := logging.Get(logging.CategoryBatch)
	records := make([]display.Record, len(files))

	g, gctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			numbers, err := load(path)
			if err != nil {
				return fmt.Errorf("batch: %w", err)
			}
			records[i] = r.Compute(path, numbers)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn("batch aborted", zap.Error(err))
		return nil, err
	}

	for _, rec := range records {
		if err := r.Display(ctx, rec); err != nil {
			return records, err
		}
	}

	log.Debug("batch complete", zap.Int("files", len(files)), zap.Int("jobs", jobs))
	return records, nil
}
