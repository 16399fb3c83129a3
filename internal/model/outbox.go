package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const EventOrderPlaced = "order.placed"

// OutboxEvent is a pending domain event stored alongside the change that
// produced it.
type OutboxEvent struct {
	ID          uuid.UUID
	AggregateID uuid.UUID
	EventType   string
	Payload     []byte
	Attempts    int
	CreatedAt   time.Time
}

// OutboxBatch is a locked set of pending events. Mark calls are applied
// within the same transaction and take effect on Commit.
type OutboxBatch interface {
	Events() []OutboxEvent
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkRetry(ctx context.Context, id uuid.UUID, next time.Time, reason string) error
	MarkDropped(ctx context.Context, id uuid.UUID, reason string) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// OutboxStore gives access to pending outbox events.
type OutboxStore interface {
	ClaimPending(ctx context.Context, limit int) (OutboxBatch, error)
	CountPending(ctx context.Context) (int, error)
}

// EventPublisher delivers an event to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
}

// OrderPlacedEvent is the payload of EventOrderPlaced.
type OrderPlacedEvent struct {
	OrderID            uuid.UUID      `json:"orderId"`
	UserID             uuid.UUID      `json:"userId"`
	Kind               OrderKind      `json:"kind"`
	TotalQuantity      int            `json:"totalQuantity"`
	CategoryQuantities map[string]int `json:"categoryQuantities"`
	CreatedAt          time.Time      `json:"createdAt"`
}
