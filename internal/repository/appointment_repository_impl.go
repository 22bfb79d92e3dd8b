package repository

import (
	"errors"
	"time"

	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
	domainRepo "github.com/yashsaxena18/curesight-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Schedule.Doctor.User").Preload("Prescriptions").
		Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Schedule.Doctor.User").Preload("Prescriptions").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Schedule").Preload("Patient.User").Preload("Prescriptions").
		Joins("JOIN doctor_schedules ON doctor_schedules.id = appointments.schedule_id").
		Where("doctor_schedules.doctor_id = ?", doctorID).
		Order("appointments.created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByPatientAndSchedule(db *gorm.DB, patientID uuid.UUID, scheduleID int) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Where("patient_id = ? AND schedule_id = ? AND status != ?",
		patientID, scheduleID, entity.AppointmentStatusCancelled).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// reminderWindow is one per-day slice of a start-time range.
type reminderWindow struct {
	date      string
	startFrom string
	startTo   string
}

// splitReminderWindow breaks [from, to] into per-day segments so a window
// that crosses midnight still matches schedules on the next calendar date.
func splitReminderWindow(from, to time.Time) []reminderWindow {
	fromDate := from.Format("2006-01-02")
	toDate := to.Format("2006-01-02")
	if fromDate == toDate {
		return []reminderWindow{
			{date: fromDate, startFrom: from.Format("15:04:05"), startTo: to.Format("15:04:05")},
		}
	}
	return []reminderWindow{
		{date: fromDate, startFrom: from.Format("15:04:05"), startTo: "23:59:59"},
		{date: toDate, startFrom: "00:00:00", startTo: to.Format("15:04:05")},
	}
}

func (r *appointmentRepository) FindUpcomingBetween(db *gorm.DB, from, to time.Time) ([]entity.Appointment, error) {
	query := db.Preload("Schedule.Doctor.User").Preload("Patient.User").
		Joins("JOIN doctor_schedules ON doctor_schedules.id = appointments.schedule_id").
		Where("appointments.status IN ?", []entity.AppointmentStatus{
			entity.AppointmentStatusPending,
			entity.AppointmentStatusConfirmed,
		})

	windows := splitReminderWindow(from, to)
	if len(windows) == 1 {
		w := windows[0]
		query = query.Where(
			"doctor_schedules.schedule_date = ? AND doctor_schedules.start_time BETWEEN ? AND ?",
			w.date, w.startFrom, w.startTo)
	} else {
		head, tail := windows[0], windows[1]
		query = query.Where(
			"(doctor_schedules.schedule_date = ? AND doctor_schedules.start_time BETWEEN ? AND ?)"+
				" OR (doctor_schedules.schedule_date = ? AND doctor_schedules.start_time BETWEEN ? AND ?)",
			head.date, head.startFrom, head.startTo,
			tail.date, tail.startFrom, tail.startTo)
	}

	var appointments []entity.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

// Cancel atomically cancels an appointment ONLY if it can still be cancelled.
// Returns affected rows: 1 = success, 0 = already cancelled or completed.
func (r *appointmentRepository) Cancel(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status IN ?", id, []entity.AppointmentStatus{
			entity.AppointmentStatusPending,
			entity.AppointmentStatusConfirmed,
		}).
		Update("status", entity.AppointmentStatusCancelled)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Complete(db *gorm.DB, id uuid.UUID, diagnosis, notes string, completedAt time.Time) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status IN ?", id, []entity.AppointmentStatus{
			entity.AppointmentStatusPending,
			entity.AppointmentStatusConfirmed,
		}).
		Updates(map[string]interface{}{
			"status":       entity.AppointmentStatusCompleted,
			"diagnosis":    diagnosis,
			"doctor_notes": notes,
			"completed_at": completedAt,
		})
	return result.RowsAffected, result.Error
}

type prescriptionItemRepository struct{}

func NewPrescriptionItemRepository() domainRepo.PrescriptionItemRepository {
	return &prescriptionItemRepository{}
}

func (r *prescriptionItemRepository) CreateBatch(db *gorm.DB, items []entity.PrescriptionItem) error {
	if len(items) == 0 {
		return nil
	}
	return db.Create(&items).Error
}

func (r *prescriptionItemRepository) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) ([]entity.PrescriptionItem, error) {
	var items []entity.PrescriptionItem
	err := db.Where("appointment_id = ?", appointmentID).Order("created_at ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
