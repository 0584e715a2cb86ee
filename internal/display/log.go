package display

import (
	"context"

	"go.uber.org/zap"
)

// Log emits each record as a structured info entry.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a log sink. A nil logger discards everything.
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger}
}

func (l *Log) Display(_ context.Context, rec Record) error {
	l.logger.Info("The RMS value is "+rec.String(),
		zap.String("run_id", rec.RunID),
		zap.String("source", rec.Source),
		zap.Float64("value", rec.Result.Value),
		zap.Int("count", rec.Result.Count),
		zap.String("formula", string(rec.Result.Formula)),
	)
	return nil
}
