package exchanges

import (
	"context"
	"go.uber.org/zap"
	"sync/atomic"
	"time"
)

type Pruner interface {
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// RetentionWorker deletes logged exchanges older than the retention period.
type RetentionWorker struct {
	logger    *zap.Logger
	pruner    Pruner
	retention time.Duration
	schedule  string
	busy      atomic.Bool
	now       func() time.Time
}

func NewRetentionWorker(logger *zap.Logger, pruner Pruner, retention time.Duration, schedule string) *RetentionWorker {
	return &RetentionWorker{
		logger:    logger,
		pruner:    pruner,
		retention: retention,
		schedule:  schedule,
		now:       time.Now,
	}
}

func (w *RetentionWorker) Name() string {
	return "exchange-retention"
}

func (w *RetentionWorker) Schedule() string {
	return w.schedule
}

func (w *RetentionWorker) Ready(time.Time) bool {
	return !w.busy.Load()
}

func (w *RetentionWorker) Execute(ctx context.Context) {
	if !w.busy.CompareAndSwap(false, true) {
		return
	}
	defer w.busy.Store(false)

	cutoff := w.now().Add(-w.retention)
	removed, err := w.pruner.Prune(ctx, cutoff)
	if err != nil {
		w.logger.Error("Failed to prune carrier exchanges", zap.Time("before", cutoff), zap.Error(err))
		return
	}
	w.logger.Info("Pruned carrier exchanges", zap.Time("before", cutoff), zap.Int64("removed", removed))
}
