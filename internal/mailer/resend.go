package mailer

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/resend/resend-go/v2"
)

// Resend sends mail through the Resend API
type Resend struct {
	client *resend.Client
	from   string
}

// NewResend creates a Resend mailer sending as "Bansho <fromEmail>"
func NewResend(apiKey, fromEmail string) *Resend {
	return &Resend{
		client: resend.NewCustomClient(&http.Client{Timeout: 10 * time.Second}, apiKey),
		from:   fmt.Sprintf("%s <%s>", appName, fromEmail),
	}
}

// withBaseURL points the client at another API host
func (m *Resend) withBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse resend base url: %w", err)
	}
	m.client.BaseURL = u
	return nil
}

func (m *Resend) Send(ctx context.Context, msg Message) error {
	_, err := m.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}
