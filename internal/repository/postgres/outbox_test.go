package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/shopkeeper-server/internal/model"
)

func TestOutboxRepository_ClaimPending(t *testing.T) {
	mock := newMockPool(t)
	sentID, retryID := uuid.New(), uuid.New()
	now := time.Now()
	next := now.Add(time.Minute)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)FROM outbox_events\s+WHERE sent_at IS NULL .* FOR UPDATE SKIP LOCKED`).
		WithArgs(10).
		WillReturnRows(pgxmock.NewRows([]string{"id", "aggregate_id", "event_type", "payload", "attempts", "created_at"}).
			AddRow(sentID, uuid.New(), model.EventOrderPlaced, `{"a":1}`, 0, now).
			AddRow(retryID, uuid.New(), model.EventOrderPlaced, `{"a":2}`, 2, now))
	mock.ExpectExec(`UPDATE outbox_events SET sent_at = NOW\(\), last_error = NULL`).
		WithArgs(sentID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`SET attempts = attempts \+ 1`).
		WithArgs(retryID, next, "broker down").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	repo := NewOutboxRepository(mock)
	ctx := context.Background()
	batch, err := repo.ClaimPending(ctx, 10)
	require.NoError(t, err)

	events := batch.Events()
	require.Len(t, events, 2)
	assert.Equal(t, []byte(`{"a":1}`), events[0].Payload)
	assert.Equal(t, 2, events[1].Attempts)

	require.NoError(t, batch.MarkSent(ctx, sentID))
	require.NoError(t, batch.MarkRetry(ctx, retryID, next, "broker down"))
	require.NoError(t, batch.Commit(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CountPending(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM outbox_events`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(4))

	repo := NewOutboxRepository(mock)
	n, err := repo.CountPending(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
