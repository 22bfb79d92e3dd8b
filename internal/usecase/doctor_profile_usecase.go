package usecase

import (
	"context"
	"errors"

	"github.com/yashsaxena18/curesight-server/internal/converter"
	"github.com/yashsaxena18/curesight-server/internal/delivery/dto"
	"github.com/yashsaxena18/curesight-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDoctorNotListed = errors.New("doctor is not available")

// DoctorProfileUsecase serves the patient-facing doctor directory.
// Only verified doctors are ever listed.
type DoctorProfileUsecase interface {
	ListVerified(ctx context.Context, filter *repository.DoctorFilter) (*dto.DoctorListResponse, error)
	GetByID(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorProfileResponse, error)
}

type doctorProfileUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorProfileRepo repository.DoctorProfileRepository
}

func NewDoctorProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorProfileRepo repository.DoctorProfileRepository,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:                db,
		log:               log,
		doctorProfileRepo: doctorProfileRepo,
	}
}

func (u *doctorProfileUsecase) ListVerified(ctx context.Context, filter *repository.DoctorFilter) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindVerified(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list verified doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorProfileUsecase) GetByID(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorProfileResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil || !profile.IsVerified {
		return nil, ErrDoctorNotListed
	}

	return converter.DoctorProfileToResponse(profile), nil
}
