package repository

import (
	"errors"
	"time"

	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
	domainRepo "github.com/yashsaxena18/curesight-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type screeningJobRepository struct{}

func NewScreeningJobRepository() domainRepo.ScreeningJobRepository {
	return &screeningJobRepository{}
}

func (r *screeningJobRepository) Create(db *gorm.DB, job *entity.ScreeningJob) error {
	return db.Create(job).Error
}

func (r *screeningJobRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ScreeningJob, error) {
	var job entity.ScreeningJob
	err := db.Where("id = ?", id).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

func (r *screeningJobRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.ScreeningJob, error) {
	var jobs []entity.ScreeningJob
	err := db.Where("patient_id = ?", patientID).Order("created_at DESC").Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *screeningJobRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.ScreeningStatus) (int64, error) {
	result := db.Model(&entity.ScreeningJob{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *screeningJobRepository) Complete(db *gorm.DB, id uuid.UUID, riskScore string, findings string, completedAt time.Time) (int64, error) {
	result := db.Model(&entity.ScreeningJob{}).
		Where("id = ? AND status = ?", id, entity.ScreeningStatusAnalyzing).
		Updates(map[string]interface{}{
			"status":       entity.ScreeningStatusCompleted,
			"risk_score":   riskScore,
			"findings":     findings,
			"completed_at": completedAt,
		})
	return result.RowsAffected, result.Error
}

func (r *screeningJobRepository) Fail(db *gorm.DB, id uuid.UUID, reason string) (int64, error) {
	result := db.Model(&entity.ScreeningJob{}).
		Where("id = ? AND status IN ?", id, []entity.ScreeningStatus{
			entity.ScreeningStatusProcessing,
			entity.ScreeningStatusAnalyzing,
		}).
		Updates(map[string]interface{}{
			"status":      entity.ScreeningStatusFailed,
			"fail_reason": reason,
		})
	return result.RowsAffected, result.Error
}

func (r *screeningJobRepository) FailStuck(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Model(&entity.ScreeningJob{}).
		Where("status IN ? AND updated_at < ?", []entity.ScreeningStatus{
			entity.ScreeningStatusProcessing,
			entity.ScreeningStatusAnalyzing,
		}, cutoff).
		Updates(map[string]interface{}{
			"status":      entity.ScreeningStatusFailed,
			"fail_reason": "analysis timed out",
		})
	return result.RowsAffected, result.Error
}
