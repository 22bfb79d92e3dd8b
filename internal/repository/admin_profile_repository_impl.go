package repository

import (
	"errors"

	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
	domainRepo "github.com/yashsaxena18/curesight-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type adminProfileRepository struct{}

func NewAdminProfileRepository() domainRepo.AdminProfileRepository {
	return &adminProfileRepository{}
}

func (r *adminProfileRepository) Create(db *gorm.DB, profile *entity.AdminProfile) error {
	return db.Create(profile).Error
}

func (r *adminProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.AdminProfile, error) {
	var profile entity.AdminProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
