package repository

import (
	"time"

	"github.com/yashsaxena18/curesight-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScreeningJobRepository interface {
	Create(db *gorm.DB, job *entity.ScreeningJob) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.ScreeningJob, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.ScreeningJob, error)

	// UpdateStatus transitions a job forward, conditional on the current
	// status. Returns affected rows so the worker can detect lost races.
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.ScreeningStatus) (int64, error)
	Complete(db *gorm.DB, id uuid.UUID, riskScore string, findings string, completedAt time.Time) (int64, error)
	Fail(db *gorm.DB, id uuid.UUID, reason string) (int64, error)

	// FailStuck marks jobs stuck in a non-terminal status since before the
	// cutoff as failed. Used by the janitor cron.
	FailStuck(db *gorm.DB, cutoff time.Time) (int64, error)
}
