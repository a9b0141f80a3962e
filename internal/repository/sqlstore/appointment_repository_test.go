package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"murim-academy/internal/domain"
	"murim-academy/internal/repository"
)

func TestAppointmentRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	ana := seedUser(t, db, "ana@example.com")
	bruno := seedUser(t, db, "bruno@example.com")

	trainerID, err := NewTrainerRepository(db).Create(ctx, &domain.Trainer{Name: "Mestre Li", Specialty: "Kung Fu"})
	require.NoError(t, err)

	repo := NewAppointmentRepository(db)
	appt := &domain.Appointment{UserID: ana.ID, TrainerID: trainerID, Date: "2026-03-02", StartTime: "18:00", EndTime: "19:00"}
	_, err = repo.Create(ctx, appt)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentPending, appt.Status)

	_, err = repo.Create(ctx, &domain.Appointment{UserID: bruno.ID, TrainerID: trainerID, Date: "2026-03-01", StartTime: "09:00", EndTime: "10:00"})
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "2026-03-01", all[0].Date)

	mine, err := repo.ListByUser(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, appt.ID, mine[0].ID)

	updated, err := repo.Update(ctx, appt.ID, repository.Patch{"status": string(domain.AppointmentConfirmed)})
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := repo.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentConfirmed, got.Status)

	_, err = repo.Create(ctx, &domain.Appointment{UserID: 777, TrainerID: trainerID, Date: "2026-03-01", StartTime: "09:00", EndTime: "10:00"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	// removing a user removes its bookings
	_, err = NewUserRepository(db).Delete(ctx, ana.ID)
	require.NoError(t, err)
	mine, err = repo.ListByUser(ctx, ana.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
