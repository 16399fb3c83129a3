package mail

import (
	"context"

	"github.com/dtroode/shopkeeper-server/internal/logger"
)

// Message is a single outgoing email.
type Message struct {
	To        string
	Subject   string
	PlainText string
	HTML      string
}

// Client delivers email messages.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// LogClient writes messages to the log instead of sending them. It is used
// when no SendGrid key is configured.
type LogClient struct {
	logger *logger.Logger
}

func NewLogClient(logger *logger.Logger) *LogClient {
	return &LogClient{logger: logger}
}

func (c *LogClient) Send(ctx context.Context, msg Message) error {
	c.logger.InfoContext(ctx, "Mail client: message not delivered, sendgrid disabled",
		"to", msg.To,
		"subject", msg.Subject,
		"body", msg.PlainText)
	return nil
}
