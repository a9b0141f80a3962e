package domain

import "time"

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment books a student with a trainer for a time window on a given day.
// Date is YYYY-MM-DD, times are HH:MM.
type Appointment struct {
	ID        int64             `db:"id" json:"id"`
	UserID    int64             `db:"user_id" json:"user_id"`
	TrainerID int64             `db:"trainer_id" json:"trainer_id"`
	Date      string            `db:"data" json:"data"`
	StartTime string            `db:"hora_inicio" json:"hora_inicio"`
	EndTime   string            `db:"hora_fim" json:"hora_fim"`
	Status    AppointmentStatus `db:"status" json:"status"`
	CreatedAt time.Time         `db:"created_at" json:"created_at"`
}
