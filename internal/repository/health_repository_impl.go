package repository

import (
	"time"

	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
	domainRepo "github.com/yashsaxena18/curesight-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dailyHealthLogRepository struct{}

func NewDailyHealthLogRepository() domainRepo.DailyHealthLogRepository {
	return &dailyHealthLogRepository{}
}

// Upsert relies on the (patient_id, log_date) unique index: a second
// submission on the same day overwrites the measurements.
func (r *dailyHealthLogRepository) Upsert(db *gorm.DB, log *entity.DailyHealthLog) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "patient_id"}, {Name: "log_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"mood", "sleep_hours", "water_glasses", "steps", "symptoms_note", "updated_at",
		}),
	}).Create(log).Error
}

func (r *dailyHealthLogRepository) FindByPatientAndRange(db *gorm.DB, patientID uuid.UUID, from, to time.Time) ([]entity.DailyHealthLog, error) {
	var logs []entity.DailyHealthLog
	err := db.Where("patient_id = ? AND log_date BETWEEN ? AND ?",
		patientID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("log_date ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *dailyHealthLogRepository) AggregateMetrics(db *gorm.DB, patientID uuid.UUID, from, to time.Time) (*domainRepo.HealthMetrics, error) {
	var metrics domainRepo.HealthMetrics
	err := db.Model(&entity.DailyHealthLog{}).
		Select(`
			COUNT(*) as log_count,
			COALESCE(AVG(sleep_hours), 0) as avg_sleep,
			COALESCE(AVG(water_glasses), 0) as avg_water,
			COALESCE(SUM(steps), 0) as total_steps,
			COALESCE(AVG(steps), 0) as avg_steps
		`).
		Where("patient_id = ? AND log_date BETWEEN ? AND ?",
			patientID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Scan(&metrics).Error
	if err != nil {
		return nil, err
	}
	return &metrics, nil
}

type healthRecordRepository struct{}

func NewHealthRecordRepository() domainRepo.HealthRecordRepository {
	return &healthRecordRepository{}
}

func (r *healthRecordRepository) Create(db *gorm.DB, record *entity.HealthRecord) error {
	return db.Create(record).Error
}

func (r *healthRecordRepository) FindByUploaderID(db *gorm.DB, uploaderID uuid.UUID) ([]entity.HealthRecord, error) {
	var records []entity.HealthRecord
	err := db.Where("uploader_id = ?", uploaderID).Order("created_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
