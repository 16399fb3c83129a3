package worker

import (
	"context"
	"math"
	"time"

	"github.com/dtroode/shopkeeper-server/internal/logger"
	"github.com/dtroode/shopkeeper-server/internal/metrics"
	"github.com/dtroode/shopkeeper-server/internal/model"
)

// OutboxRelayConfig tunes the relay loop.
type OutboxRelayConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
	BackoffMax   time.Duration
}

// OutboxRelay publishes pending outbox events to the broker.
type OutboxRelay struct {
	store     model.OutboxStore
	publisher model.EventPublisher
	cfg       OutboxRelayConfig
	now       func() time.Time
	logger    *logger.Logger
}

func NewOutboxRelay(store model.OutboxStore, publisher model.EventPublisher, cfg OutboxRelayConfig, logger *logger.Logger) *OutboxRelay {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 10
	}
	if cfg.BackoffMax <= 0 {
		cfg.BackoffMax = 5 * time.Minute
	}
	return &OutboxRelay{
		store:     store,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger,
	}
}

func (r *OutboxRelay) Run(ctx context.Context) {
	t := time.NewTicker(r.cfg.PollInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Outbox relay: stopped")
			return
		case <-t.C:
			if err := r.Tick(ctx); err != nil {
				r.logger.ErrorContext(ctx, "Outbox relay: tick failed", "error", err.Error())
			}
		}
	}
}

// Tick handles one batch of pending events inside a single transaction.
func (r *OutboxRelay) Tick(ctx context.Context) error {
	r.updatePending(ctx)

	batch, err := r.store.ClaimPending(ctx, r.cfg.BatchSize)
	if err != nil {
		return err
	}
	defer func() { _ = batch.Rollback(ctx) }()

	events := batch.Events()
	for _, e := range events {
		if e.Attempts >= r.cfg.MaxAttempts {
			if err := batch.MarkDropped(ctx, e.ID, "max attempts reached"); err != nil {
				return err
			}
			r.logger.WarnContext(ctx, "Outbox relay: event dropped after max attempts",
				"event_id", e.ID,
				"type", e.EventType,
				"attempts", e.Attempts)
			continue
		}

		pubErr := r.publisher.Publish(ctx, e)
		if pubErr == nil {
			if err := batch.MarkSent(ctx, e.ID); err != nil {
				return err
			}
			metrics.OutboxSentTotal.Inc()
			continue
		}

		metrics.OutboxPublishErrorsTotal.Inc()
		next := r.now().Add(backoff(e.Attempts+1, r.cfg.BackoffMax))
		if err := batch.MarkRetry(ctx, e.ID, next, pubErr.Error()); err != nil {
			return err
		}
		r.logger.ErrorContext(ctx, "Outbox relay: publish failed, retry scheduled",
			"event_id", e.ID,
			"type", e.EventType,
			"attempts", e.Attempts+1,
			"next", next,
			"error", pubErr.Error())
	}

	if err := batch.Commit(ctx); err != nil {
		return err
	}

	if len(events) > 0 {
		r.logger.DebugContext(ctx, "Outbox relay: batch processed", "events", len(events))
	}
	return nil
}

func (r *OutboxRelay) updatePending(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	n, err := r.store.CountPending(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Outbox relay: failed to count pending events", "error", err.Error())
		return
	}
	metrics.OutboxPending.Set(float64(n))
}

// backoff is 2^attempt seconds, at least one second and at most max.
func backoff(attempt int, max time.Duration) time.Duration {
	secs := math.Pow(2, float64(attempt))
	if secs >= max.Seconds() {
		return max
	}
	if secs < 1 {
		return time.Second
	}
	return time.Duration(secs) * time.Second
}
