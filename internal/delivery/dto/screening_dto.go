package dto

import (
	"time"

	"github.com/google/uuid"
)

// Response DTOs
// Screening uploads arrive as multipart form data, so there is no JSON
// request DTO for submission.

type ScreeningSubmitResponse struct {
	JobID  uuid.UUID `json:"job_id"`
	Status string    `json:"status"`
}

type ScreeningStatusResponse struct {
	JobID       uuid.UUID  `json:"job_id"`
	FileName    string     `json:"file_name,omitempty"`
	Status      string     `json:"status"`
	RiskScore   string     `json:"risk_score,omitempty"`
	RiskLevel   string     `json:"risk_level,omitempty"`
	Findings    string     `json:"findings,omitempty"`
	FailReason  string     `json:"fail_reason,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ScreeningListResponse struct {
	Jobs  []ScreeningStatusResponse `json:"jobs"`
	Total int                       `json:"total"`
}
