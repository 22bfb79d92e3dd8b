package repository

import (
	"time"

	"github.com/yashsaxena18/curesight-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindByPatientAndSchedule(db *gorm.DB, patientID uuid.UUID, scheduleID int) (*entity.Appointment, error)

	// FindUpcomingBetween returns non-terminal appointments whose schedule
	// date/start time falls inside the window. Used by the reminder cron.
	FindUpcomingBetween(db *gorm.DB, from, to time.Time) ([]entity.Appointment, error)

	// Cancel atomically cancels ONLY if still cancellable.
	// Returns affected rows: 1 = success, 0 = already cancelled/completed.
	Cancel(db *gorm.DB, id uuid.UUID) (int64, error)

	// Complete records the consultation outcome and moves the appointment to
	// completed, guarded against double completion the same way as Cancel.
	Complete(db *gorm.DB, id uuid.UUID, diagnosis, notes string, completedAt time.Time) (int64, error)
}

type PrescriptionItemRepository interface {
	CreateBatch(db *gorm.DB, items []entity.PrescriptionItem) error
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) ([]entity.PrescriptionItem, error)
}
