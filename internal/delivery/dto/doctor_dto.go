package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// VerificationDecisionRequest carries the admin's note on a verification
// action. The note is required for rejections.
type VerificationDecisionRequest struct {
	Notes string `json:"notes" validate:"omitempty,max=2000"`
}

// Response DTOs

type DoctorProfileResponse struct {
	UserID             uuid.UUID  `json:"user_id"`
	FullName           string     `json:"full_name,omitempty"`
	Email              string     `json:"email,omitempty"`
	LicenseNumber      string     `json:"license_number"`
	Specialization     string     `json:"specialization"`
	Biography          string     `json:"biography,omitempty"`
	ConsultationFee    string     `json:"consultation_fee"`
	VerificationStatus string     `json:"verification_status"`
	IsVerified         bool       `json:"is_verified"`
	ReviewNotes        string     `json:"review_notes,omitempty"`
	ReviewedAt         *time.Time `json:"reviewed_at,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorProfileResponse `json:"doctors"`
	Total   int                     `json:"total"`
}
