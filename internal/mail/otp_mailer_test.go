package mail

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingClient struct {
	sent []Message
}

func (r *recordingClient) Send(_ context.Context, msg Message) error {
	r.sent = append(r.sent, msg)
	return nil
}

func TestOTPMailer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		send        func(m *OTPMailer) error
		wantSubject string
		wantPurpose string
	}{
		{
			name:        "signup",
			send:        func(m *OTPMailer) error { return m.SendSignupOTP(context.Background(), "a@example.com", "4821") },
			wantSubject: signupSubject,
			wantPurpose: "complete your registration",
		},
		{
			name:        "password reset",
			send:        func(m *OTPMailer) error { return m.SendPasswordResetOTP(context.Background(), "a@example.com", "4821") },
			wantSubject: resetSubject,
			wantPurpose: "reset your password",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := &recordingClient{}
			require.NoError(t, tt.send(NewOTPMailer(client, 10*time.Minute)))
			require.Len(t, client.sent, 1)

			msg := client.sent[0]
			assert.Equal(t, "a@example.com", msg.To)
			assert.Equal(t, tt.wantSubject, msg.Subject)
			assert.Contains(t, msg.PlainText, "4821")
			assert.Contains(t, msg.PlainText, tt.wantPurpose)
			assert.Contains(t, msg.PlainText, "10 minutes")
			assert.Contains(t, msg.HTML, "<strong>4821</strong>")
		})
	}
}
