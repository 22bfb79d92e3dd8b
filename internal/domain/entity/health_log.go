package entity

import (
	"time"

	"github.com/google/uuid"
)

// DailyHealthLog is one self-reported wellness entry per patient per day.
// Submitting twice on the same day overwrites the earlier entry.
type DailyHealthLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_patient_log_date" json:"patient_id"`
	LogDate      time.Time `gorm:"type:date;not null;uniqueIndex:idx_patient_log_date" json:"log_date"`
	Mood         string    `gorm:"type:varchar(20)" json:"mood,omitempty"`
	SleepHours   float64   `gorm:"type:decimal(4,1);not null;default:0" json:"sleep_hours"`
	WaterGlasses int       `gorm:"not null;default:0" json:"water_glasses"`
	Steps        int       `gorm:"not null;default:0" json:"steps"`
	SymptomsNote string    `gorm:"type:text" json:"symptoms_note,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"-"`
}

func (DailyHealthLog) TableName() string {
	return "daily_health_logs"
}
