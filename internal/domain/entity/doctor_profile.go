package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VerificationStatus represents the admin review state of a doctor account
type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusInReview VerificationStatus = "in_review"
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusRejected VerificationStatus = "rejected"
)

// DoctorProfile represents doctor-specific profile data.
// A doctor is listed to patients only after an admin verifies the account.
type DoctorProfile struct {
	UserID             uuid.UUID          `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber      string             `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization     string             `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Biography          string             `gorm:"type:text" json:"biography,omitempty"`
	ConsultationFee    decimal.Decimal    `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	VerificationStatus VerificationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"verification_status"`
	IsVerified         bool               `gorm:"not null;default:false;index" json:"is_verified"`
	ReviewNotes        string             `gorm:"type:text" json:"review_notes,omitempty"`
	ReviewedBy         *uuid.UUID         `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt         *time.Time         `json:"reviewed_at,omitempty"`

	// Relationships
	User      User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Schedules []DoctorSchedule `gorm:"foreignKey:DoctorID" json:"schedules,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// IsDecided reports whether an admin has already made a final decision.
// in_review is not final: the admin asked for more documents.
func (d *DoctorProfile) IsDecided() bool {
	return d.VerificationStatus == VerificationStatusVerified ||
		d.VerificationStatus == VerificationStatusRejected
}
