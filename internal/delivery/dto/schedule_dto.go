package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateScheduleRequest struct {
	ScheduleDate string `json:"schedule_date" validate:"required"` // Format: YYYY-MM-DD
	StartTime    string `json:"start_time" validate:"required"`    // Format: HH:MM
	EndTime      string `json:"end_time" validate:"required"`      // Format: HH:MM
	TotalQuota   int    `json:"total_quota" validate:"required,min=1,max=200"`
}

type UpdateScheduleRequest struct {
	StartTime  string `json:"start_time" validate:"omitempty"`
	EndTime    string `json:"end_time" validate:"omitempty"`
	TotalQuota int    `json:"total_quota" validate:"omitempty,min=1,max=200"`
}

type ScheduleFilterRequest struct {
	StartAt        string `json:"start_at" validate:"omitempty"`
	EndAt          string `json:"end_at" validate:"omitempty"`
	DoctorName     string `json:"doctor_name" validate:"omitempty"`
	Specialization string `json:"specialization" validate:"omitempty"`
}

// Response DTOs

type ScheduleResponse struct {
	ID             int       `json:"id"`
	DoctorID       uuid.UUID `json:"doctor_id"`
	DoctorName     string    `json:"doctor_name,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	ScheduleDate   string    `json:"schedule_date"`
	StartTime      string    `json:"start_time"`
	EndTime        string    `json:"end_time"`
	TotalQuota     int       `json:"total_quota"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	Total     int                `json:"total"`
}
