package service

import (
	"context"
	"fmt"
	"strings"

	"murim-academy/internal/auth"
	"murim-academy/internal/domain"
	"murim-academy/internal/repository"
)

// AppointmentService books students with trainers.
type AppointmentService interface {
	Book(ctx context.Context, caller auth.Identity, appt *domain.Appointment) (int64, error)
	List(ctx context.Context) ([]domain.Appointment, error)
	ListForUser(ctx context.Context, caller auth.Identity, userID int64) ([]domain.Appointment, error)
	Get(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, patch repository.Patch) error
	Delete(ctx context.Context, id int64) error
}

type appointmentService struct {
	appointments repository.AppointmentRepository
	users        repository.UserRepository
	trainers     repository.TrainerRepository
}

func NewAppointmentService(appointments repository.AppointmentRepository, users repository.UserRepository, trainers repository.TrainerRepository) AppointmentService {
	return &appointmentService{
		appointments: appointments,
		users:        users,
		trainers:     trainers,
	}
}

func canActFor(caller auth.Identity, userID int64) bool {
	return caller.Role == domain.RoleAdmin || caller.UserID == userID
}

// Book stores a new appointment. Students may only book for themselves; a zero
// user id means the caller. Overlapping bookings are not detected.
func (s *appointmentService) Book(ctx context.Context, caller auth.Identity, appt *domain.Appointment) (int64, error) {
	if appt.UserID == 0 {
		appt.UserID = caller.UserID
	}
	if !canActFor(caller, appt.UserID) {
		return 0, fmt.Errorf("book for user %d: %w", appt.UserID, domain.ErrForbidden)
	}
	if appt.TrainerID <= 0 {
		return 0, domain.NewValidationError("trainer_id", "is required")
	}

	appt.Date = strings.TrimSpace(appt.Date)
	if err := checkDate("data", appt.Date); err != nil {
		return 0, err
	}
	appt.StartTime = strings.TrimSpace(appt.StartTime)
	appt.EndTime = strings.TrimSpace(appt.EndTime)
	if err := checkTimeRange(appt.StartTime, appt.EndTime); err != nil {
		return 0, err
	}
	if appt.Status == "" {
		appt.Status = domain.AppointmentPending
	}
	if !appt.Status.Valid() {
		return 0, invalidStatus()
	}

	if _, err := s.users.GetByID(ctx, appt.UserID); err != nil {
		return 0, err
	}
	if _, err := s.trainers.GetByID(ctx, appt.TrainerID); err != nil {
		return 0, err
	}
	return s.appointments.Create(ctx, appt)
}

func (s *appointmentService) List(ctx context.Context) ([]domain.Appointment, error) {
	return s.appointments.List(ctx)
}

func (s *appointmentService) ListForUser(ctx context.Context, caller auth.Identity, userID int64) ([]domain.Appointment, error) {
	if !canActFor(caller, userID) {
		return nil, fmt.Errorf("appointments of user %d: %w", userID, domain.ErrForbidden)
	}
	return s.appointments.ListByUser(ctx, userID)
}

func (s *appointmentService) Get(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *appointmentService) Update(ctx context.Context, id int64, patch repository.Patch) error {
	if len(patch) == 0 {
		return errNoFields()
	}

	if v, ok := patch["status"]; ok {
		status, err := stringValue("status", v)
		if err != nil {
			return err
		}
		if !domain.AppointmentStatus(status).Valid() {
			return invalidStatus()
		}
	}
	if v, ok := patch["data"]; ok {
		date, err := stringValue("data", v)
		if err != nil {
			return err
		}
		if err := checkDate("data", date); err != nil {
			return err
		}
	}
	if v, ok := patch["user_id"]; ok {
		if err := s.checkRef(ctx, "user_id", v, func(ctx context.Context, id int64) error {
			_, err := s.users.GetByID(ctx, id)
			return err
		}); err != nil {
			return err
		}
	}
	if v, ok := patch["trainer_id"]; ok {
		if err := s.checkRef(ctx, "trainer_id", v, func(ctx context.Context, id int64) error {
			_, err := s.trainers.GetByID(ctx, id)
			return err
		}); err != nil {
			return err
		}
	}

	_, hasStart := patch["hora_inicio"]
	_, hasEnd := patch["hora_fim"]
	if hasStart || hasEnd {
		current, err := s.appointments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		start, err := patchString(patch, "hora_inicio", current.StartTime)
		if err != nil {
			return err
		}
		end, err := patchString(patch, "hora_fim", current.EndTime)
		if err != nil {
			return err
		}
		if err := checkTimeRange(start, end); err != nil {
			return err
		}
	}

	return applyPatch(ctx, "appointment", id, patch, s.appointments.Update)
}

func (s *appointmentService) checkRef(ctx context.Context, field string, v any, exists func(context.Context, int64) error) error {
	id, ok := v.(int64)
	if !ok || id <= 0 {
		return domain.NewValidationError(field, "must be a positive id")
	}
	return exists(ctx, id)
}

func (s *appointmentService) Delete(ctx context.Context, id int64) error {
	ok, err := s.appointments.Delete(ctx, id)
	return checkDeleted("appointment", id, ok, err)
}

func invalidStatus() error {
	return domain.NewValidationError("status", "must be one of: %s, %s, %s",
		domain.AppointmentPending, domain.AppointmentConfirmed, domain.AppointmentCancelled)
}
