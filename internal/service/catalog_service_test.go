package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"murim-academy/internal/domain"
	"murim-academy/internal/repository"
)

func TestProductServiceValidation(t *testing.T) {
	svc := NewProductService(newFakeProductRepo())
	ctx := context.Background()
	var verr *domain.ValidationError

	_, err := svc.Create(ctx, &domain.Product{Name: " ", Description: "x", Price: 1})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "nome", verr.Field)

	_, err = svc.Create(ctx, &domain.Product{Name: "Kimono", Description: "x", Price: -1})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "preco", verr.Field)

	id, err := svc.Create(ctx, &domain.Product{Name: " Kimono ", Description: "Algodao", Price: 199.9})
	require.NoError(t, err)

	p, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Kimono", p.Name)

	err = svc.Update(ctx, id, repository.Patch{"preco": json.Number("-3")})
	require.ErrorAs(t, err, &verr)

	require.NoError(t, svc.Update(ctx, id, repository.Patch{"preco": json.Number("249.5")}))
	p, err = svc.Get(ctx, id)
	require.NoError(t, err)
	assert.InDelta(t, 249.5, p.Price, 0.0001)

	err = svc.Update(ctx, id, repository.Patch{})
	require.ErrorAs(t, err, &verr)

	require.ErrorIs(t, svc.Update(ctx, 404, repository.Patch{"nome": "x"}), domain.ErrNoRowsAffected)
	require.NoError(t, svc.Delete(ctx, id))
	require.ErrorIs(t, svc.Delete(ctx, id), domain.ErrNoRowsAffected)
}

func TestScheduleServiceTimeRange(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := NewScheduleService(repo)
	ctx := context.Background()
	var verr *domain.ValidationError

	base := domain.Schedule{Weekday: "segunda", StartTime: "19:00", EndTime: "20:00", Modality: "Kung Fu", Level: "iniciante"}

	bad := base
	bad.EndTime = "18:00"
	_, err := svc.Create(ctx, &bad)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "hora_fim", verr.Field)

	bad = base
	bad.StartTime = "7pm"
	_, err = svc.Create(ctx, &bad)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "hora_inicio", verr.Field)

	good := base
	id, err := svc.Create(ctx, &good)
	require.NoError(t, err)

	// only one bound changes; it is checked against the stored one
	err = svc.Update(ctx, id, repository.Patch{"hora_fim": "18:30"})
	require.ErrorAs(t, err, &verr)

	require.NoError(t, svc.Update(ctx, id, repository.Patch{"hora_fim": "21:00"}))
	assert.Equal(t, repository.Patch{"hora_fim": "21:00"}, repo.lastPatch)

	err = svc.Update(ctx, 99, repository.Patch{"hora_fim": "21:00"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTrainerService(t *testing.T) {
	svc := NewTrainerService(newFakeTrainerRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.Trainer{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	id, err := svc.Create(ctx, &domain.Trainer{Name: "Mestre Li"})
	require.NoError(t, err)

	err = svc.Update(ctx, id, repository.Patch{"nome": "  "})
	require.ErrorAs(t, err, &verr)

	require.NoError(t, svc.SetImage(ctx, id, "https://cdn.test/li.png"))
	img, err := svc.CurrentImage(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/li.png", img)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
