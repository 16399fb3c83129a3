package worker

import (
	"context"
	"time"

	"github.com/dtroode/shopkeeper-server/internal/logger"
	"github.com/dtroode/shopkeeper-server/internal/metrics"
	"github.com/dtroode/shopkeeper-server/internal/model"
)

// CartSweeper permanently removes soft-deleted cart items whose retention
// window has passed. The delete re-checks status and due time in the
// database, so items re-added since removal survive.
type CartSweeper struct {
	store    model.CartStore
	interval time.Duration
	batch    int
	now      func() time.Time
	logger   *logger.Logger
}

func NewCartSweeper(store model.CartStore, interval time.Duration, batch int, logger *logger.Logger) *CartSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if batch <= 0 {
		batch = 500
	}
	return &CartSweeper{
		store:    store,
		interval: interval,
		batch:    batch,
		now:      time.Now,
		logger:   logger,
	}
}

// Run sweeps immediately, which catches up on items that fell due while the
// process was down, and then on every tick until ctx is done.
func (s *CartSweeper) Run(ctx context.Context) {
	s.RunOnce(ctx)

	t := time.NewTicker(s.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Cart sweeper: stopped")
			return
		case <-t.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce purges due items in batches and returns how many were removed.
// Errors are logged and end the sweep early.
func (s *CartSweeper) RunOnce(ctx context.Context) int64 {
	var total int64
	now := s.now()

	for ctx.Err() == nil {
		n, err := s.store.PurgeExpired(ctx, now, s.batch)
		if err != nil {
			s.logger.ErrorContext(ctx, "Cart sweeper: purge failed", "error", err.Error())
			break
		}
		total += n
		metrics.CartItemsPurgedTotal.Add(float64(n))
		if n < int64(s.batch) {
			break
		}
	}

	s.logger.DebugContext(ctx, "Cart sweeper: sweep finished", "purged", total)
	return total
}
