package rabbitmq

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/shopkeeper-server/internal/model"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	declared   []string
	kinds      []string
	published  []published
	declareErr error
	publishErr error
}

func (f *fakeChannel) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	f.declared = append(f.declared, name)
	f.kinds = append(f.kinds, kind)
	return f.declareErr
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return f.publishErr
}

func TestDeclareTopology(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ch      *fakeChannel
		wantErr bool
	}{
		{name: "declares topic exchange", ch: &fakeChannel{}},
		{name: "broker error", ch: &fakeChannel{declareErr: errors.New("access refused")}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := DeclareTopology(tt.ch, "shop.events")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{"shop.events"}, tt.ch.declared)
			assert.Equal(t, []string{amqp.ExchangeTopic}, tt.ch.kinds)
		})
	}
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	ch := &fakeChannel{}
	p := NewPublisher(ch, "shop.events")
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	event := model.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: uuid.New(),
		EventType:   model.EventOrderPlaced,
		Payload:     []byte(`{"orderId":"x"}`),
		Attempts:    2,
	}

	require.NoError(t, p.Publish(context.Background(), event))
	require.Len(t, ch.published, 1)

	got := ch.published[0]
	assert.Equal(t, "shop.events", got.exchange)
	assert.Equal(t, model.EventOrderPlaced, got.key)
	assert.Equal(t, event.Payload, got.msg.Body)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)
	assert.Equal(t, fixed, got.msg.Timestamp)
	assert.Equal(t, event.ID.String(), got.msg.Headers["x-outbox-id"])
	assert.Equal(t, int32(2), got.msg.Headers["x-attempts"])
}

func TestPublisher_Publish_Error(t *testing.T) {
	t.Parallel()

	ch := &fakeChannel{publishErr: amqp.ErrClosed}
	p := NewPublisher(ch, "shop.events")

	err := p.Publish(context.Background(), model.OutboxEvent{ID: uuid.New(), EventType: model.EventOrderPlaced})
	require.ErrorIs(t, err, amqp.ErrClosed)
}
