package usecase

import (
	"context"
	"errors"

	"github.com/yashsaxena18/curesight-server/internal/converter"
	"github.com/yashsaxena18/curesight-server/internal/delivery/dto"
	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
	"github.com/yashsaxena18/curesight-server/internal/domain/repository"
	"github.com/yashsaxena18/curesight-server/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrVerificationDecided   = errors.New("verification has already been decided")
	ErrRejectionNeedsNotes   = errors.New("rejection requires review notes")
	ErrMissingAdminPrivilege = errors.New("admin account lacks the required permission")
)

// DoctorVerificationUsecase is the admin review workflow for doctor
// accounts. Approve and reject are final; request-documents moves the
// profile to in_review and keeps it on the pending queue.
type DoctorVerificationUsecase interface {
	GetPendingDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	Approve(ctx context.Context, adminID, doctorID uuid.UUID, req *dto.VerificationDecisionRequest) (*dto.DoctorProfileResponse, error)
	Reject(ctx context.Context, adminID, doctorID uuid.UUID, req *dto.VerificationDecisionRequest) (*dto.DoctorProfileResponse, error)
	RequestDocuments(ctx context.Context, adminID, doctorID uuid.UUID, req *dto.VerificationDecisionRequest) (*dto.DoctorProfileResponse, error)
}

type doctorVerificationUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorProfileRepo repository.DoctorProfileRepository
	adminProfileRepo  repository.AdminProfileRepository
	auditService      service.AuditService
}

func NewDoctorVerificationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorProfileRepo repository.DoctorProfileRepository,
	adminProfileRepo repository.AdminProfileRepository,
	auditService service.AuditService,
) DoctorVerificationUsecase {
	return &doctorVerificationUsecase{
		db:                db,
		log:               log,
		doctorProfileRepo: doctorProfileRepo,
		adminProfileRepo:  adminProfileRepo,
		auditService:      auditService,
	}
}

func (u *doctorVerificationUsecase) GetPendingDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindPendingReview(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find pending doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorVerificationUsecase) Approve(ctx context.Context, adminID, doctorID uuid.UUID, req *dto.VerificationDecisionRequest) (*dto.DoctorProfileResponse, error) {
	return u.decide(ctx, adminID, doctorID, entity.VerificationStatusVerified, true, req.Notes, entity.AuditActionDoctorApprove)
}

func (u *doctorVerificationUsecase) Reject(ctx context.Context, adminID, doctorID uuid.UUID, req *dto.VerificationDecisionRequest) (*dto.DoctorProfileResponse, error) {
	if req.Notes == "" {
		return nil, ErrRejectionNeedsNotes
	}
	return u.decide(ctx, adminID, doctorID, entity.VerificationStatusRejected, false, req.Notes, entity.AuditActionDoctorReject)
}

func (u *doctorVerificationUsecase) RequestDocuments(ctx context.Context, adminID, doctorID uuid.UUID, req *dto.VerificationDecisionRequest) (*dto.DoctorProfileResponse, error) {
	return u.decide(ctx, adminID, doctorID, entity.VerificationStatusInReview, false, req.Notes, entity.AuditActionDoctorRequestDocs)
}

// decide runs one verification transition. The conditional update makes the
// decision single shot: a second admin hitting the same profile gets zero
// affected rows instead of silently overwriting the first decision.
func (u *doctorVerificationUsecase) decide(ctx context.Context, adminID, doctorID uuid.UUID, to entity.VerificationStatus, verified bool, notes, auditAction string) (*dto.DoctorProfileResponse, error) {
	if err := u.checkPermission(ctx, adminID); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	if profile.IsDecided() {
		return nil, ErrVerificationDecided
	}

	from := []entity.VerificationStatus{
		entity.VerificationStatusPending,
		entity.VerificationStatusInReview,
	}

	rows, err := u.doctorProfileRepo.UpdateVerification(tx, doctorID, from, to, verified, notes, adminID)
	if err != nil {
		u.log.Warnf("Failed to update verification status: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrVerificationDecided
	}

	if err := u.auditService.LogTransition(tx, &adminID, auditAction,
		"doctor_profile", doctorID.String(), string(profile.VerificationStatus), string(to)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	updated, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to reload doctor profile: %+v", err)
		return nil, err
	}

	return converter.DoctorProfileToResponse(updated), nil
}

func (u *doctorVerificationUsecase) checkPermission(ctx context.Context, adminID uuid.UUID) error {
	admin, err := u.adminProfileRepo.FindByUserID(u.db.WithContext(ctx), adminID)
	if err != nil {
		u.log.Warnf("Failed to find admin profile: %+v", err)
		return err
	}
	if admin == nil || !admin.HasPermission(entity.PermissionVerifyDoctors) {
		return ErrMissingAdminPrivilege
	}
	return nil
}
