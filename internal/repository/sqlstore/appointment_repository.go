package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"murim-academy/internal/domain"
	"murim-academy/internal/repository"
)

const appointmentColumns = `id, user_id, trainer_id, data, hora_inicio, hora_fim, status, created_at`

type AppointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (int64, error) {
	if a.Status == "" {
		a.Status = domain.AppointmentPending
	}
	a.CreatedAt = time.Now().UTC()

	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
INSERT INTO agendamentos (user_id, trainer_id, data, hora_inicio, hora_fim, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id`),
		a.UserID,
		a.TrainerID,
		a.Date,
		a.StartTime,
		a.EndTime,
		string(a.Status),
		a.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("user or trainer %w", domain.ErrNotFound)
		}
		return 0, fmt.Errorf("insert appointment: %w", err)
	}
	a.ID = id
	return id, nil
}

func (r *AppointmentRepository) List(ctx context.Context) ([]domain.Appointment, error) {
	appts := make([]domain.Appointment, 0)
	if err := r.db.SelectContext(ctx, &appts,
		`SELECT `+appointmentColumns+` FROM agendamentos ORDER BY data, hora_inicio, id`); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

func (r *AppointmentRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Appointment, error) {
	appts := make([]domain.Appointment, 0)
	if err := r.db.SelectContext(ctx, &appts, r.db.Rebind(
		`SELECT `+appointmentColumns+` FROM agendamentos WHERE user_id = ? ORDER BY data, hora_inicio, id`), userID); err != nil {
		return nil, fmt.Errorf("list appointments for user %d: %w", userID, err)
	}
	return appts, nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := getOne(ctx, r.db, &a, "appointment", `SELECT `+appointmentColumns+` FROM agendamentos WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) Update(ctx context.Context, id int64, patch repository.Patch) (bool, error) {
	return applyUpdate(ctx, r.db, appointmentsTable, id, patch)
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteRow(ctx, r.db, appointmentsTable, id)
}
