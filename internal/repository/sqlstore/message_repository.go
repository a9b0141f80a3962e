package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"murim-academy/internal/domain"
	"murim-academy/internal/repository"
)

const messageColumns = `id, nome_completo, email, telefone, assunto, mensagem, lida, created_at`

type MessageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) (int64, error) {
	msg.CreatedAt = time.Now().UTC()
	msg.Read = false

	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
INSERT INTO mensagens (nome_completo, email, telefone, assunto, mensagem, lida, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id`),
		msg.FullName,
		msg.Email,
		msg.Phone,
		msg.Subject,
		msg.Body,
		msg.Read,
		msg.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}
	msg.ID = id
	return id, nil
}

// List returns every message, newest first.
func (r *MessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	messages := make([]domain.Message, 0)
	if err := r.db.SelectContext(ctx, &messages,
		`SELECT `+messageColumns+` FROM mensagens ORDER BY created_at DESC, id DESC`); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	var msg domain.Message
	err := r.db.GetContext(ctx, &msg, r.db.Rebind(`SELECT `+messageColumns+` FROM mensagens WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("message %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scan message: %w", err)
	}
	return &msg, nil
}

func (r *MessageRepository) Update(ctx context.Context, id int64, patch repository.Patch) (bool, error) {
	return applyUpdate(ctx, r.db, messagesTable, id, patch)
}

func (r *MessageRepository) MarkRead(ctx context.Context, id int64) (bool, error) {
	return applyUpdate(ctx, r.db, messagesTable, id, repository.Patch{"lida": true})
}

func (r *MessageRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteRow(ctx, r.db, messagesTable, id)
}

func (r *MessageRepository) CountUnread(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(`SELECT COUNT(*) FROM mensagens WHERE lida = ?`), false); err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return count, nil
}
