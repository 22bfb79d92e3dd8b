package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	ScheduleID int    `json:"schedule_id" validate:"required,min=1"`
	Mode       string `json:"mode" validate:"required,oneof=online clinic home-visit"`
	Symptoms   string `json:"symptoms" validate:"omitempty,max=2000"`
}

// RecordConsultationRequest is submitted by the doctor after the
// consultation; it completes the appointment.
type RecordConsultationRequest struct {
	Diagnosis     string                    `json:"diagnosis" validate:"required,max=4000"`
	DoctorNotes   string                    `json:"doctor_notes" validate:"omitempty,max=4000"`
	Prescriptions []PrescriptionItemRequest `json:"prescriptions" validate:"omitempty,dive"`
}

type PrescriptionItemRequest struct {
	Medicine     string `json:"medicine" validate:"required,max=255"`
	Dosage       string `json:"dosage" validate:"required,max=100"`
	Frequency    string `json:"frequency" validate:"required,max=100"`
	Duration     string `json:"duration" validate:"required,max=100"`
	Instructions string `json:"instructions" validate:"omitempty,max=1000"`
}

// Response DTOs

type AppointmentResponse struct {
	ID            uuid.UUID                  `json:"id"`
	PatientID     uuid.UUID                  `json:"patient_id"`
	ScheduleID    int                        `json:"schedule_id"`
	BookingCode   string                     `json:"booking_code"`
	QueueNumber   int                        `json:"queue_number"`
	Mode          string                     `json:"mode"`
	Symptoms      string                     `json:"symptoms,omitempty"`
	Diagnosis     string                     `json:"diagnosis,omitempty"`
	DoctorNotes   string                     `json:"doctor_notes,omitempty"`
	Status        string                     `json:"status"`
	Schedule      *ScheduleResponse          `json:"schedule,omitempty"`
	Prescriptions []PrescriptionItemResponse `json:"prescriptions,omitempty"`
	CompletedAt   *time.Time                 `json:"completed_at,omitempty"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

type PrescriptionItemResponse struct {
	ID           uuid.UUID `json:"id"`
	Medicine     string    `json:"medicine"`
	Dosage       string    `json:"dosage"`
	Frequency    string    `json:"frequency"`
	Duration     string    `json:"duration"`
	Instructions string    `json:"instructions,omitempty"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
