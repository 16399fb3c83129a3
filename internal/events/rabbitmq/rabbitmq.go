package rabbitmq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dtroode/shopkeeper-server/internal/model"
)

const publishTimeout = 5 * time.Second

// Conn holds a broker connection and the channel used for publishing.
type Conn struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

// Connect dials the broker and opens a channel.
func Connect(url string) (*Conn, error) {
	c, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rabbitmq: %w", err)
	}
	ch, err := c.Channel()
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	return &Conn{Conn: c, Ch: ch}, nil
}

func (c *Conn) Close() error {
	if c.Ch != nil {
		_ = c.Ch.Close()
	}
	if c.Conn != nil {
		return c.Conn.Close()
	}
	return nil
}

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// DeclareTopology declares the durable topic exchange order events go to.
func DeclareTopology(ch channel, exchange string) error {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return nil
}

// Publisher implements model.EventPublisher. The event type is used as the
// routing key.
type Publisher struct {
	ch       channel
	exchange string
	now      func() time.Time
}

func NewPublisher(ch channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, now: time.Now}
}

func (p *Publisher) Publish(ctx context.Context, event model.OutboxEvent) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err := p.ch.PublishWithContext(ctx, p.exchange, event.EventType, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Type:         event.EventType,
		Timestamp:    p.now(),
		Body:         event.Payload,
		Headers: amqp.Table{
			"x-outbox-id":    event.ID.String(),
			"x-aggregate-id": event.AggregateID.String(),
			"x-attempts":     int32(event.Attempts),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.EventType, err)
	}
	return nil
}
