package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// ConsultationMode is how the consultation takes place
type ConsultationMode string

const (
	ModeOnline    ConsultationMode = "online"
	ModeClinic    ConsultationMode = "clinic"
	ModeHomeVisit ConsultationMode = "home-visit"
)

// Appointment represents a booked consultation between a patient and a doctor.
// Diagnosis and prescription items are filled in by the doctor when the
// consultation is recorded, which also moves the appointment to completed.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	ScheduleID      int               `gorm:"not null;index" json:"schedule_id"`
	BookingCode     string            `gorm:"type:varchar(50);uniqueIndex;not null" json:"booking_code"`
	QueueNumber     int               `gorm:"not null;default:0" json:"queue_number"`
	Mode            ConsultationMode  `gorm:"type:varchar(20);not null" json:"mode"`
	Symptoms        string            `gorm:"type:text" json:"symptoms,omitempty"`
	Diagnosis       string            `gorm:"type:text" json:"diagnosis,omitempty"`
	DoctorNotes     string            `gorm:"type:text" json:"doctor_notes,omitempty"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient       PatientProfile     `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Schedule      DoctorSchedule     `gorm:"foreignKey:ScheduleID" json:"schedule,omitempty"`
	Prescriptions []PrescriptionItem `gorm:"foreignKey:AppointmentID" json:"prescriptions,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// IsCompleted checks if the consultation has been recorded
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// CanBeCancelled reports whether a cancel is still allowed
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}

// CanRecordConsultation reports whether the doctor may still record the
// consultation outcome
func (a *Appointment) CanRecordConsultation() bool {
	return a.Status == AppointmentStatusPending || a.Status == AppointmentStatusConfirmed
}
