package entity

import (
	"time"

	"github.com/google/uuid"
)

// PrescriptionItem is a single medicine line on a consultation outcome.
// Rows are written once by the doctor and never edited afterwards.
type PrescriptionItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index" json:"appointment_id"`
	Medicine      string    `gorm:"type:varchar(255);not null" json:"medicine"`
	Dosage        string    `gorm:"type:varchar(100);not null" json:"dosage"`
	Frequency     string    `gorm:"type:varchar(100);not null" json:"frequency"`
	Duration      string    `gorm:"type:varchar(100);not null" json:"duration"`
	Instructions  string    `gorm:"type:text" json:"instructions,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}

func (PrescriptionItem) TableName() string {
	return "prescription_items"
}
