package worker

import (
	"context"
	"time"

	"fulfillment/internal/metrics"

	"go.uber.org/zap"
)

// Expirer cancels pending returns whose window has lapsed.
type Expirer interface {
	ExpireStalePending(ctx context.Context, batchSize int) (int, error)
}

// ExpirySweeper runs the expiry pass on a fixed interval.
type ExpirySweeper struct {
	expirer   Expirer
	interval  time.Duration
	batchSize int
	logger    *zap.Logger
}

func NewExpirySweeper(expirer Expirer, interval time.Duration, batchSize int, logger *zap.Logger) *ExpirySweeper {
	return &ExpirySweeper{
		expirer:   expirer,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run sweeps once at start and then on every tick until ctx is cancelled.
func (s *ExpirySweeper) Run(ctx context.Context) {
	s.logger.Info("expiry sweeper started",
		zap.Duration("interval", s.interval),
		zap.Int("batch_size", s.batchSize))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-ctx.Done():
			s.logger.Info("expiry sweeper stopped")
			return
		}
	}
}

func (s *ExpirySweeper) sweep(ctx context.Context) {
	expired, err := s.expirer.ExpireStalePending(ctx, s.batchSize)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("expiry_sweep").Inc()
		s.logger.Error("expiry sweep failed", zap.Int("expired", expired), zap.Error(err))
		return
	}
	if expired > 0 {
		s.logger.Debug("expiry sweep cancelled stale returns", zap.Int("expired", expired))
	}
}
