package repository

import (
	"context"

	"murim-academy/internal/domain"
)

// AppointmentRepository persists trainer bookings.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (int64, error)
	List(ctx context.Context) ([]domain.Appointment, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, patch Patch) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
