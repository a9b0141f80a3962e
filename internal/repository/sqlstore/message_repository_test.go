package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"murim-academy/internal/domain"
	"murim-academy/internal/repository"
)

func TestMessageRepositoryLifecycle(t *testing.T) {
	db := newTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	first := &domain.Message{FullName: "Ana", Email: "ana@example.com", Phone: "119", Body: "Quero uma aula experimental"}
	_, err := repo.Create(ctx, first)
	require.NoError(t, err)
	second := &domain.Message{FullName: "Bruno", Email: "bruno@example.com", Phone: "118", Subject: "Horarios", Body: "Tem aula sabado?"}
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	count, err := repo.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	msgs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, second.ID, msgs[0].ID)
	assert.False(t, msgs[0].Read)

	marked, err := repo.MarkRead(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, marked)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, got.Read)

	count, err = repo.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	updated, err := repo.Update(ctx, second.ID, repository.Patch{"assunto": "Horarios de sabado"})
	require.NoError(t, err)
	assert.True(t, updated)

	marked, err = repo.MarkRead(ctx, 999)
	require.NoError(t, err)
	assert.False(t, marked)

	deleted, err := repo.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetByID(ctx, first.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
