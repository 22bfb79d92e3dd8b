package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type DailyLogRequest struct {
	LogDate      string  `json:"log_date" validate:"omitempty"` // Format: YYYY-MM-DD, defaults to today
	Mood         string  `json:"mood" validate:"omitempty,oneof=great good okay low bad"`
	SleepHours   float64 `json:"sleep_hours" validate:"gte=0,lte=24"`
	WaterGlasses int     `json:"water_glasses" validate:"gte=0,lte=50"`
	Steps        int     `json:"steps" validate:"gte=0"`
	SymptomsNote string  `json:"symptoms_note" validate:"omitempty,max=2000"`
}

type CreateHealthRecordRequest struct {
	RecordType string   `json:"record_type" validate:"required,oneof=lab_result imaging_report prescription vaccination other"`
	Title      string   `json:"title" validate:"required,max=255"`
	FilePath   string   `json:"file_path" validate:"required,max=512"`
	Tags       []string `json:"tags" validate:"omitempty,max=20"`
}

// Response DTOs

type DailyLogResponse struct {
	ID           uuid.UUID `json:"id"`
	LogDate      string    `json:"log_date"`
	Mood         string    `json:"mood,omitempty"`
	SleepHours   float64   `json:"sleep_hours"`
	WaterGlasses int       `json:"water_glasses"`
	Steps        int       `json:"steps"`
	SymptomsNote string    `json:"symptoms_note,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type DailyLogListResponse struct {
	Logs  []DailyLogResponse `json:"logs"`
	Total int                `json:"total"`
}

type HealthMetricsResponse struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	LogCount   int64   `json:"log_count"`
	AvgSleep   float64 `json:"avg_sleep_hours"`
	AvgWater   float64 `json:"avg_water_glasses"`
	TotalSteps int64   `json:"total_steps"`
	AvgSteps   float64 `json:"avg_steps"`
}

type HealthRecordResponse struct {
	ID         uuid.UUID `json:"id"`
	RecordType string    `json:"record_type"`
	Title      string    `json:"title"`
	FilePath   string    `json:"file_path"`
	Tags       []string  `json:"tags,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type HealthRecordListResponse struct {
	Records []HealthRecordResponse `json:"records"`
	Total   int                    `json:"total"`
}
