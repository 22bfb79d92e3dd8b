package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScreeningStatus is the lifecycle of a mammogram analysis job.
// Jobs only move forward: processing -> analyzing -> completed | failed.
type ScreeningStatus string

const (
	ScreeningStatusProcessing ScreeningStatus = "processing"
	ScreeningStatusAnalyzing  ScreeningStatus = "analyzing"
	ScreeningStatusCompleted  ScreeningStatus = "completed"
	ScreeningStatusFailed     ScreeningStatus = "failed"
)

// ScreeningJob tracks one uploaded mammogram through the analysis pipeline.
// The actual analysis runs in an external analyzer service; this row records
// the hand-off and its outcome.
type ScreeningJob struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	FileName    string          `gorm:"type:varchar(255);not null" json:"file_name"`
	FilePath    string          `gorm:"type:varchar(512);not null" json:"file_path"`
	Status      ScreeningStatus `gorm:"type:varchar(20);not null;default:'processing';index" json:"status"`
	RiskScore   decimal.Decimal `gorm:"type:decimal(5,4);not null;default:0" json:"risk_score"`
	Findings    string          `gorm:"type:text" json:"findings,omitempty"`
	FailReason  string          `gorm:"type:text" json:"fail_reason,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
}

func (ScreeningJob) TableName() string {
	return "screening_jobs"
}

// IsTerminal reports whether the job has finished, successfully or not
func (j *ScreeningJob) IsTerminal() bool {
	return j.Status == ScreeningStatusCompleted || j.Status == ScreeningStatusFailed
}
