package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	"murim-academy/internal/domain"
	"murim-academy/internal/notify"
	"murim-academy/internal/repository"
)

const notifyTimeout = 10 * time.Second

// MessageService handles the public contact form and the admin inbox.
type MessageService interface {
	Submit(ctx context.Context, msg *domain.Message) (int64, error)
	List(ctx context.Context) ([]domain.Message, error)
	Get(ctx context.Context, id int64) (*domain.Message, error)
	Update(ctx context.Context, id int64, patch repository.Patch) error
	MarkRead(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	CountUnread(ctx context.Context) (int, error)
}

type messageService struct {
	messages repository.MessageRepository
	notifier notify.Notifier
	policy   *bluemonday.Policy
	log      logrus.FieldLogger
}

func NewMessageService(messages repository.MessageRepository, notifier notify.Notifier, log logrus.FieldLogger) MessageService {
	return &messageService{
		messages: messages,
		notifier: notifier,
		policy:   bluemonday.StrictPolicy(),
		log:      log,
	}
}

// clean strips every tag from visitor input and keeps the remaining text as typed;
// the policy escapes entities, which plain-text storage must not carry.
func (s *messageService) clean(v string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(v)))
}

func (s *messageService) Submit(ctx context.Context, msg *domain.Message) (int64, error) {
	var err error
	if msg.FullName, err = requireText("nome_completo", s.clean(msg.FullName)); err != nil {
		return 0, err
	}
	msg.Email = normalizeEmail(msg.Email)
	if err := checkEmail(msg.Email); err != nil {
		return 0, err
	}
	if msg.Phone, err = requireText("telefone", s.clean(msg.Phone)); err != nil {
		return 0, err
	}
	if msg.Body, err = requireText("mensagem", s.clean(msg.Body)); err != nil {
		return 0, err
	}
	msg.Subject = s.clean(msg.Subject)

	id, err := s.messages.Create(ctx, msg)
	if err != nil {
		return 0, err
	}

	if s.notifier != nil {
		notifyCtx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()
		if err := s.notifier.MessageReceived(notifyCtx, msg); err != nil {
			s.log.WithError(err).WithField("message_id", id).Warn("notify staff about message")
		}
	}
	return id, nil
}

func (s *messageService) List(ctx context.Context) ([]domain.Message, error) {
	return s.messages.List(ctx)
}

func (s *messageService) Get(ctx context.Context, id int64) (*domain.Message, error) {
	return s.messages.GetByID(ctx, id)
}

func (s *messageService) Update(ctx context.Context, id int64, patch repository.Patch) error {
	for field, value := range patch {
		switch field {
		case "nome_completo", "mensagem":
			text, err := textValue(field, value)
			if err != nil {
				return err
			}
			patch[field] = s.clean(text)
		case "email":
			raw, err := stringValue(field, value)
			if err != nil {
				return err
			}
			email := normalizeEmail(raw)
			if err := checkEmail(email); err != nil {
				return err
			}
			patch[field] = email
		case "telefone", "assunto":
			text, err := stringValue(field, value)
			if err != nil {
				return err
			}
			patch[field] = s.clean(text)
		case "lida":
			if _, ok := value.(bool); !ok {
				return domain.NewValidationError(field, "must be a boolean")
			}
		}
	}
	return applyPatch(ctx, "message", id, patch, s.messages.Update)
}

func (s *messageService) MarkRead(ctx context.Context, id int64) error {
	ok, err := s.messages.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("mark message %d read: %w", id, domain.ErrNoRowsAffected)
	}
	return nil
}

// Delete reports a missing message as not found rather than as a failed delete.
func (s *messageService) Delete(ctx context.Context, id int64) error {
	if _, err := s.messages.GetByID(ctx, id); err != nil {
		return err
	}
	ok, err := s.messages.Delete(ctx, id)
	return checkDeleted("message", id, ok, err)
}

func (s *messageService) CountUnread(ctx context.Context) (int, error) {
	return s.messages.CountUnread(ctx)
}
