package credential

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunSweeper calls SweepExpired on the issuer's sweep interval until ctx is
// cancelled. Failed sweeps are logged and retried on the next tick.
func (i *Issuer) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(i.sweep)
	defer ticker.Stop()

	i.log.Info("Passcode sweeper started", zap.Duration("interval", i.sweep))

	for {
		select {
		case <-ctx.Done():
			i.log.Info("Passcode sweeper stopped")
			return
		case <-ticker.C:
			// SweepExpired logs its own failures
			_, _ = i.SweepExpired(ctx)
		}
	}
}
