package mail

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/dtroode/shopkeeper-server/internal/logger"
)

type sendgridAPI interface {
	SendWithContext(ctx context.Context, email *sgmail.SGMailV3) (*rest.Response, error)
}

// SendGridClient delivers mail through the SendGrid v3 API.
type SendGridClient struct {
	api    sendgridAPI
	from   *sgmail.Email
	logger *logger.Logger
}

func NewSendGridClient(apiKey, fromName, fromAddress string, logger *logger.Logger) *SendGridClient {
	return newSendGridClient(sendgrid.NewSendClient(apiKey), fromName, fromAddress, logger)
}

func newSendGridClient(api sendgridAPI, fromName, fromAddress string, logger *logger.Logger) *SendGridClient {
	return &SendGridClient{
		api:    api,
		from:   sgmail.NewEmail(fromName, fromAddress),
		logger: logger,
	}
}

func (c *SendGridClient) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return errors.New("recipient address is empty")
	}

	message := sgmail.NewSingleEmail(c.from, msg.Subject, sgmail.NewEmail("", msg.To), msg.PlainText, msg.HTML)

	resp, err := c.api.SendWithContext(ctx, message)
	if err != nil {
		c.logger.ErrorContext(ctx, "Mail client: sendgrid request failed",
			"to", msg.To,
			"error", err.Error())
		return fmt.Errorf("failed to send mail: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.ErrorContext(ctx, "Mail client: sendgrid rejected message",
			"to", msg.To,
			"status", resp.StatusCode,
			"body", resp.Body)
		return fmt.Errorf("sendgrid send failed: status=%d", resp.StatusCode)
	}

	c.logger.DebugContext(ctx, "Mail client: message sent",
		"to", msg.To,
		"subject", msg.Subject,
		"status", resp.StatusCode)
	return nil
}
