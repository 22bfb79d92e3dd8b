package entity

import (
	"time"

	"github.com/google/uuid"
)

// HealthRecordType tags what kind of document a health record points at
type HealthRecordType string

const (
	RecordTypeLabResult     HealthRecordType = "lab_result"
	RecordTypeImagingReport HealthRecordType = "imaging_report"
	RecordTypePrescription  HealthRecordType = "prescription"
	RecordTypeVaccination   HealthRecordType = "vaccination"
	RecordTypeOther         HealthRecordType = "other"
)

// HealthRecord is uploaded document metadata; the file itself lives on disk
// under the configured upload directory.
type HealthRecord struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UploaderID uuid.UUID        `gorm:"type:uuid;not null;index" json:"uploader_id"`
	RecordType HealthRecordType `gorm:"type:varchar(30);not null;index" json:"record_type"`
	Title      string           `gorm:"type:varchar(255);not null" json:"title"`
	FilePath   string           `gorm:"type:varchar(512);not null" json:"file_path"`
	Tags       JSON             `gorm:"type:jsonb" json:"tags,omitempty"`
	CreatedAt  time.Time        `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Uploader User `gorm:"foreignKey:UploaderID" json:"-"`
}

func (HealthRecord) TableName() string {
	return "health_records"
}
