// Package runner is the entry point between the CLI and the calculator: it
// computes a result, stamps it and hands it to a display sink.
package runner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rmscalc/internal/calc"
	"rmscalc/internal/display"
	"rmscalc/internal/logging"
)

// Runner computes and displays results. It holds no per-run state and is
// safe for concurrent use as long as its Sink is. The zero value computes
// with the default formula and discards results.
type Runner struct {
	Calculator calc.Calculator
	Sink       display.Sink

	// Overridable for tests.
	now   func() time.Time
	newID func() string
}

// New returns a Runner writing to sink.
func New(c calc.Calculator, sink display.Sink) *Runner {
	return &Runner{
		Calculator: c,
		Sink:       sink,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Compute evaluates numbers without displaying the result.
func (r *Runner) Compute(source string, numbers []float64) display.Record {
	input := append([]float64(nil), numbers...)
	if input == nil {
		input = []float64{}
	}
	now, newID := r.now, r.newID
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}

	rec := display.Record{
		RunID:  newID(),
		Source: source,
		Input:  input,
		Result: r.Calculator.Compute(input),
		At:     now(),
	}

	logging.Get(logging.CategoryCalc).Debug("computed",
		zap.String("run_id", rec.RunID),
		zap.String("source", source),
		zap.Int("count", rec.Result.Count),
		zap.Float64("sum_squares", rec.Result.SumSquares),
		zap.Float64("value", rec.Result.Value),
		zap.String("formula", string(rec.Result.Formula)),
	)

	return rec
}

// Run computes numbers and forwards the record to the sink. Sink errors are
// returned unchanged.
func (r *Runner) Run(ctx context.Context, source string, numbers []float64) (display.Record, error) {
	rec := r.Compute(source, numbers)
	return rec, r.Display(ctx, rec)
}

// Display forwards an already computed record to the sink.
func (r *Runner) Display(ctx context.Context, rec display.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.Sink == nil {
		return nil
	}
	if err := r.Sink.Display(ctx, rec); err != nil {
		logging.Get(logging.CategoryDisplay).Warn("sink failed",
			zap.String("run_id", rec.RunID), zap.Error(err))
		return err
	}
	return nil
}
