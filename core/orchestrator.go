package core

import (
	"context"
	"fmt"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"time"
)

type Orchestrator struct {
	workers []Worker
	logger  *zap.Logger
}

func NewOrchestrator(logger *zap.Logger, workers []Worker) *Orchestrator {
	return &Orchestrator{workers: workers, logger: logger}
}

// Start schedules every worker and runs them until ctx is done. A tick is
// skipped while the worker reports it is not ready.
func (o *Orchestrator) Start(ctx context.Context) (*cron.Cron, error) {
	c := cron.New()

	for _, worker := range o.workers {
		_, err := c.AddFunc(worker.Schedule(), func() {
			if !worker.Ready(time.Now()) {
				o.logger.Info("Worker busy, skipping tick", zap.String("worker", worker.Name()))
				return
			}
			go worker.Execute(ctx)
		})
		if err != nil {
			return nil, fmt.Errorf("schedule %s: %w", worker.Name(), err)
		}
		o.logger.Info("Worker scheduled",
			zap.String("worker", worker.Name()),
			zap.String("schedule", worker.Schedule()),
		)
	}

	c.Start()
	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()
	return c, nil
}
