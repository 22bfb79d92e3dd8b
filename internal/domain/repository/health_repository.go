package repository

import (
	"time"

	"github.com/yashsaxena18/curesight-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HealthMetrics aggregates a patient's daily logs over a date range.
type HealthMetrics struct {
	LogCount     int64   `json:"log_count"`
	AvgSleep     float64 `json:"avg_sleep_hours"`
	AvgWater     float64 `json:"avg_water_glasses"`
	TotalSteps   int64   `json:"total_steps"`
	AvgSteps     float64 `json:"avg_steps"`
}

type DailyHealthLogRepository interface {
	// Upsert inserts the log or, when a row for the same patient and date
	// already exists, overwrites its measurements.
	Upsert(db *gorm.DB, log *entity.DailyHealthLog) error
	FindByPatientAndRange(db *gorm.DB, patientID uuid.UUID, from, to time.Time) ([]entity.DailyHealthLog, error)
	AggregateMetrics(db *gorm.DB, patientID uuid.UUID, from, to time.Time) (*HealthMetrics, error)
}

type HealthRecordRepository interface {
	Create(db *gorm.DB, record *entity.HealthRecord) error
	FindByUploaderID(db *gorm.DB, uploaderID uuid.UUID) ([]entity.HealthRecord, error)
}
