package mail

import (
	"context"
	"fmt"
	"html"
	"time"
)

const (
	signupSubject = "Verify your email"
	resetSubject  = "Reset your password"
)

// OTPMailer implements model.Notifier on top of a mail Client.
type OTPMailer struct {
	client Client
	ttl    time.Duration
}

func NewOTPMailer(client Client, ttl time.Duration) *OTPMailer {
	return &OTPMailer{client: client, ttl: ttl}
}

func (m *OTPMailer) SendSignupOTP(ctx context.Context, email, code string) error {
	return m.client.Send(ctx, m.compose(email, signupSubject, "to complete your registration", code))
}

func (m *OTPMailer) SendPasswordResetOTP(ctx context.Context, email, code string) error {
	return m.client.Send(ctx, m.compose(email, resetSubject, "to reset your password", code))
}

func (m *OTPMailer) compose(to, subject, purpose, code string) Message {
	minutes := int(m.ttl.Minutes())
	text := fmt.Sprintf("Your verification code is %s. Use it %s. The code expires in %d minutes.", code, purpose, minutes)

	return Message{
		To:        to,
		Subject:   subject,
		PlainText: text,
		HTML: fmt.Sprintf("<p>Your verification code is <strong>%s</strong>.</p><p>Use it %s. The code expires in %d minutes.</p>",
			html.EscapeString(code), purpose, minutes),
	}
}
