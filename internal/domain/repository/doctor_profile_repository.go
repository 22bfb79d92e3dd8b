package repository

import (
	"github.com/yashsaxena18/curesight-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DoctorFilter narrows patient-facing doctor listings.
type DoctorFilter struct {
	Specialization string
	Name           string
}

type DoctorProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DoctorProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindVerified(db *gorm.DB, filter *DoctorFilter) ([]entity.DoctorProfile, error)
	FindPendingReview(db *gorm.DB) ([]entity.DoctorProfile, error)
	Update(db *gorm.DB, profile *entity.DoctorProfile) error

	// UpdateVerification performs a conditional status transition and returns
	// the number of affected rows. Zero rows means the decision was already
	// made by another admin.
	UpdateVerification(db *gorm.DB, userID uuid.UUID, from []entity.VerificationStatus, to entity.VerificationStatus, isVerified bool, notes string, reviewedBy uuid.UUID) (int64, error)
}
