package repository

import (
	"errors"
	"time"

	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
	domainRepo "github.com/yashsaxena18/curesight-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindVerified(db *gorm.DB, filter *domainRepo.DoctorFilter) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	query := db.
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("doctor_profiles.is_verified = ?", true).
		Where("doctor_profiles.verification_status = ?", entity.VerificationStatusVerified).
		Where("users.is_active = ?", true)

	if filter != nil {
		if filter.Specialization != "" {
			query = query.Where("doctor_profiles.specialization ILIKE ?", "%"+filter.Specialization+"%")
		}
		if filter.Name != "" {
			query = query.Where("users.full_name ILIKE ?", "%"+filter.Name+"%")
		}
	}

	err := query.Preload("User").Order("users.full_name ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) FindPendingReview(db *gorm.DB) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	err := db.Preload("User").
		Where("verification_status IN ?", []entity.VerificationStatus{
			entity.VerificationStatusPending,
			entity.VerificationStatusInReview,
		}).
		Order("user_id ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Save(profile).Error
}

// UpdateVerification performs the status transition only when the current
// status is one of `from`. Zero affected rows means another admin already
// decided.
func (r *doctorProfileRepository) UpdateVerification(db *gorm.DB, userID uuid.UUID, from []entity.VerificationStatus, to entity.VerificationStatus, isVerified bool, notes string, reviewedBy uuid.UUID) (int64, error) {
	now := time.Now().UTC()
	result := db.Model(&entity.DoctorProfile{}).
		Where("user_id = ? AND verification_status IN ?", userID, from).
		Updates(map[string]interface{}{
			"verification_status": to,
			"is_verified":         isVerified,
			"review_notes":        notes,
			"reviewed_by":         reviewedBy,
			"reviewed_at":         now,
		})
	return result.RowsAffected, result.Error
}
