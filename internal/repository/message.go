package repository

import (
	"context"

	"murim-academy/internal/domain"
)

// MessageRepository persists contact-form messages.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) (int64, error)
	List(ctx context.Context) ([]domain.Message, error)
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	Update(ctx context.Context, id int64, patch Patch) (bool, error)
	MarkRead(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountUnread(ctx context.Context) (int, error)
}
