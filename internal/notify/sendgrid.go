package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"murim-academy/internal/domain"
)

// SendGridNotifier mails the notice to the academy inbox through the SendGrid v3 API.
type SendGridNotifier struct {
	client *sendgrid.Client
	from   *sgmail.Email
	to     *sgmail.Email
}

func NewSendGridNotifier(apiKey, from, to string) (*SendGridNotifier, error) {
	if apiKey == "" {
		return nil, errors.New("sendgrid api key is required")
	}
	if from == "" || to == "" {
		return nil, errors.New("sendgrid sender and recipient are required")
	}
	return &SendGridNotifier{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail("Murim Academy", from),
		to:     sgmail.NewEmail("Murim Academy", to),
	}, nil
}

func (n *SendGridNotifier) MessageReceived(ctx context.Context, msg *domain.Message) error {
	m := n.prepare(msg)
	res, err := n.client.SendWithContext(ctx, m)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("send notification: sendgrid status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}

func (n *SendGridNotifier) prepare(msg *domain.Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = subject(msg)
	p.AddTos(n.to)

	m := sgmail.NewV3Mail()
	m.SetFrom(n.from)
	m.SetReplyTo(sgmail.NewEmail(msg.FullName, msg.Email))
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", plainBody(msg)))
	return m
}
