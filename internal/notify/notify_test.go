package notify

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"murim-academy/internal/domain"
)

func TestLogNotifierRecordsMessage(t *testing.T) {
	logger, hook := test.NewNullLogger()

	n := NewLogNotifier(logger)
	err := n.MessageReceived(context.Background(), &domain.Message{ID: 7, FullName: "Ana", Email: "ana@example.com", Subject: "Aulas"})
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, int64(7), entry.Data["message_id"])
	assert.Equal(t, "ana@example.com", entry.Data["from"])
}

func TestNewSendGridNotifierRequiresSettings(t *testing.T) {
	_, err := NewSendGridNotifier("", "a@example.com", "b@example.com")
	require.Error(t, err)

	_, err = NewSendGridNotifier("key", "", "b@example.com")
	require.Error(t, err)

	n, err := NewSendGridNotifier("key", "noreply@example.com", "contato@example.com")
	require.NoError(t, err)
	require.NotNil(t, n)
}

func TestSendGridPrepare(t *testing.T) {
	n, err := NewSendGridNotifier("key", "noreply@example.com", "contato@example.com")
	require.NoError(t, err)

	m := n.prepare(&domain.Message{FullName: "Ana", Email: "ana@example.com", Phone: "119", Body: "Oi"})
	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "Nova mensagem de Ana", m.Personalizations[0].Subject)
	assert.Equal(t, "contato@example.com", m.Personalizations[0].To[0].Address)
	assert.Equal(t, "ana@example.com", m.ReplyTo.Address)
	require.Len(t, m.Content, 1)
	assert.Contains(t, m.Content[0].Value, "Telefone: 119")
	assert.Contains(t, m.Content[0].Value, "Oi")
}

func TestSubjectUsesProvidedSubject(t *testing.T) {
	assert.Equal(t, "Nova mensagem: Horarios", subject(&domain.Message{Subject: " Horarios "}))
}
