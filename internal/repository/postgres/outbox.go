package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/shopkeeper-server/internal/model"
)

var _ model.OutboxStore = (*OutboxRepository)(nil)

type OutboxRepository struct {
	db DB
}

func NewOutboxRepository(db DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func enqueueEvent(ctx context.Context, tx pgx.Tx, event model.OutboxEvent) error {
	_, err := tx.Exec(ctx, `INSERT INTO outbox_events (id, aggregate_id, event_type, payload, created_at, next_attempt_at)
		VALUES ($1, $2, $3, $4::jsonb, $5, $5)`,
		event.ID, event.AggregateID, event.EventType, string(event.Payload), event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue outbox event: %w", err)
	}
	return nil
}

// ClaimPending locks up to limit due events. The returned batch holds an open
// transaction and must be committed or rolled back.
func (r *OutboxRepository) ClaimPending(ctx context.Context, limit int) (model.OutboxBatch, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	events, err := selectPendingEvents(ctx, tx, limit)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}

	return &outboxBatch{tx: tx, events: events}, nil
}

func selectPendingEvents(ctx context.Context, tx pgx.Tx, limit int) ([]model.OutboxEvent, error) {
	rows, err := tx.Query(ctx, `SELECT id, aggregate_id, event_type, payload::text, attempts, created_at
		FROM outbox_events
		WHERE sent_at IS NULL AND next_attempt_at <= NOW()
		ORDER BY created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending events: %w", err)
	}
	defer rows.Close()

	events := make([]model.OutboxEvent, 0)
	for rows.Next() {
		var (
			e       model.OutboxEvent
			payload string
		)
		if err := rows.Scan(&e.ID, &e.AggregateID, &e.EventType, &payload, &e.Attempts, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}
		e.Payload = []byte(payload)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outbox events: %w", err)
	}

	return events, nil
}

func (r *OutboxRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM outbox_events WHERE sent_at IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pending events: %w", err)
	}
	return n, nil
}

type outboxBatch struct {
	tx     pgx.Tx
	events []model.OutboxEvent
}

func (b *outboxBatch) Events() []model.OutboxEvent {
	return b.events
}

func (b *outboxBatch) MarkSent(ctx context.Context, id uuid.UUID) error {
	if _, err := b.tx.Exec(ctx, `UPDATE outbox_events SET sent_at = NOW(), last_error = NULL WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to mark event sent: %w", err)
	}
	return nil
}

func (b *outboxBatch) MarkRetry(ctx context.Context, id uuid.UUID, next time.Time, reason string) error {
	_, err := b.tx.Exec(ctx, `UPDATE outbox_events
		SET attempts = attempts + 1, next_attempt_at = $2, last_error = $3
		WHERE id = $1`, id, next, reason)
	if err != nil {
		return fmt.Errorf("failed to schedule event retry: %w", err)
	}
	return nil
}

// MarkDropped gives up on an event. It is kept for inspection with sent_at set.
func (b *outboxBatch) MarkDropped(ctx context.Context, id uuid.UUID, reason string) error {
	if _, err := b.tx.Exec(ctx, `UPDATE outbox_events SET sent_at = NOW(), last_error = $2 WHERE id = $1`, id, reason); err != nil {
		return fmt.Errorf("failed to drop event: %w", err)
	}
	return nil
}

func (b *outboxBatch) Commit(ctx context.Context) error {
	return b.tx.Commit(ctx)
}

func (b *outboxBatch) Rollback(ctx context.Context) error {
	return b.tx.Rollback(ctx)
}
