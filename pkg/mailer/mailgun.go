package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const sendTimeout = 10 * time.Second

// Mailgun sends transactional mail for the API through one configured domain.
type Mailgun struct {
	client *mg.MailgunImpl
	sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{client: mg.NewMailgun(domain, apiKey), sender: sender}
}

// Send delivers an HTML message to a single recipient. The text part is left
// empty; every mail this API sends is HTML.
func (m *Mailgun) Send(ctx context.Context, to, subject, html string) error {
	msg := m.client.NewMessage(m.sender, subject, "", to)
	msg.SetHtml(html)

	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}
