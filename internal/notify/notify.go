// Package notify tells the academy staff about new contact-form messages.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"murim-academy/internal/domain"
)

// Notifier delivers a notice about a freshly received message.
type Notifier interface {
	MessageReceived(ctx context.Context, msg *domain.Message) error
}

// LogNotifier only records the notice. Used when no mail provider is configured.
type LogNotifier struct {
	log logrus.FieldLogger
}

func NewLogNotifier(log logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) MessageReceived(_ context.Context, msg *domain.Message) error {
	n.log.WithFields(logrus.Fields{
		"message_id": msg.ID,
		"from":       msg.Email,
		"subject":    msg.Subject,
	}).Info("contact message received")
	return nil
}

func subject(msg *domain.Message) string {
	if s := strings.TrimSpace(msg.Subject); s != "" {
		return "Nova mensagem: " + s
	}
	return "Nova mensagem de " + msg.FullName
}

func plainBody(msg *domain.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Nome: %s\n", msg.FullName)
	fmt.Fprintf(&b, "Email: %s\n", msg.Email)
	fmt.Fprintf(&b, "Telefone: %s\n", msg.Phone)
	if msg.Subject != "" {
		fmt.Fprintf(&b, "Assunto: %s\n", msg.Subject)
	}
	b.WriteString("\n")
	b.WriteString(msg.Body)
	b.WriteString("\n")
	return b.String()
}
