package application

import (
	"context"
	"time"

	"github.com/ashirarif0999-sketch/blueember/internal/logger"
)

// RunStatusWorker drives the status simulator: one sweep immediately, then
// one per tick until the context is cancelled.
func RunStatusWorker(ctx context.Context, engine *OrderEngine, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}

	logger.Info("status worker starting", "interval", interval.String())
	engine.UpdateOrderStatuses(ctx)

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("status worker stopped")
			return nil
		case <-t.C:
			engine.UpdateOrderStatuses(ctx)
		}
	}
}
