package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrScheduleNotFound    = errors.New("schedule not found")
	ErrScheduleNotOwned    = errors.New("schedule belongs to another doctor")
	ErrScheduleInPast      = errors.New("schedule date is in the past")
	ErrDoctorNotVerified   = errors.New("doctor account is not verified")
	ErrInvalidScheduleDate = errors.New("invalid schedule date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat   = errors.New("invalid time format, use HH:MM")
	ErrInvalidTimeRange    = errors.New("end time must be after start time")
)

type DoctorScheduleUsecase interface {
	CreateSchedule(ctx context.Context, doctorID uuid.UUID, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error)
	GetSchedule(ctx context.Context, scheduleID int) (*dto.ScheduleResponse, error)
	GetSchedulesByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.ScheduleListResponse, error)
	GetAvailableSchedules(ctx context.Context, req *dto.ScheduleFilterRequest) (*dto.ScheduleListResponse, error)
	UpdateSchedule(ctx context.Context, doctorID uuid.UUID, scheduleID int, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error)
	DeleteSchedule(ctx context.Context, doctorID uuid.UUID, scheduleID int) error
}

type doctorScheduleUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	scheduleRepo      repository.DoctorScheduleRepository
	doctorProfileRepo repository.DoctorProfileRepository
	slotService       *service.SlotService
	auditService      service.AuditService
}

func NewDoctorScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.DoctorScheduleRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	slotService *service.SlotService,
	auditService service.AuditService,
) DoctorScheduleUsecase {
	return &doctorScheduleUsecase{
		db:                db,
		log:               log,
		scheduleRepo:      scheduleRepo,
		doctorProfileRepo: doctorProfileRepo,
		slotService:       slotService,
		auditService:      auditService,
	}
}

func (u *doctorScheduleUsecase) CreateSchedule(ctx context.Context, doctorID uuid.UUID, req *dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsVerified {
		return nil, ErrDoctorNotVerified
	}

	scheduleDate, err := time.Parse("2006-01-02", req.ScheduleDate)
	if err != nil {
		return nil, ErrInvalidScheduleDate
	}
	if scheduleDate.Before(truncateToDay(time.Now())) {
		return nil, ErrScheduleInPast
	}

	startTime, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	endTime, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}
	if !endTime.After(startTime) {
		return nil, ErrInvalidTimeRange
	}

	schedule := &entity.DoctorSchedule{
		DoctorID:     doctorID,
		ScheduleDate: scheduleDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		TotalQuota:   req.TotalQuota,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.scheduleRepo.Create(tx, schedule); err != nil {
		u.log.Warnf("Failed to create schedule: %+v", err)
		return nil, err
	}

	if err := u.auditService.Log(tx, &doctorID, entity.AuditActionScheduleCreate, entity.JSON{
		"schedule_id":   schedule.ID,
		"schedule_date": req.ScheduleDate,
		"total_quota":   req.TotalQuota,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if err := u.slotService.SyncScheduleQuota(ctx, schedule.ID, schedule.TotalQuota, schedule.ScheduleDate); err != nil {
		u.log.Warnf("Failed to sync slot quota to Redis: %+v", err)
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *doctorScheduleUsecase) GetSchedule(ctx context.Context, scheduleID int) (*dto.ScheduleResponse, error) {
	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *doctorScheduleUsecase) GetSchedulesByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.ScheduleListResponse, error) {
	schedules, err := u.scheduleRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find schedules: %+v", err)
		return nil, err
	}

	return &dto.ScheduleListResponse{
		Schedules: converter.SchedulesToResponses(schedules),
		Total:     len(schedules),
	}, nil
}

func (u *doctorScheduleUsecase) GetAvailableSchedules(ctx context.Context, req *dto.ScheduleFilterRequest) (*dto.ScheduleListResponse, error) {
	filter := &repository.ScheduleFilter{
		StartAt:        req.StartAt,
		EndAt:          req.EndAt,
		DoctorName:     req.DoctorName,
		Specialization: req.Specialization,
	}

	schedules, err := u.scheduleRepo.FindAllWithVerifiedDoctor(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find available schedules: %+v", err)
		return nil, err
	}

	return &dto.ScheduleListResponse{
		Schedules: converter.SchedulesToResponses(schedules),
		Total:     len(schedules),
	}, nil
}

func (u *doctorScheduleUsecase) UpdateSchedule(ctx context.Context, doctorID uuid.UUID, scheduleID int, req *dto.UpdateScheduleRequest) (*dto.ScheduleResponse, error) {
	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}
	if schedule.DoctorID != doctorID {
		return nil, ErrScheduleNotOwned
	}

	if req.StartTime != "" {
		if _, err := time.Parse("15:04", req.StartTime); err != nil {
			return nil, ErrInvalidTimeFormat
		}
		schedule.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		if _, err := time.Parse("15:04", req.EndTime); err != nil {
			return nil, ErrInvalidTimeFormat
		}
		schedule.EndTime = req.EndTime
	}
	quotaChanged := req.TotalQuota > 0 && req.TotalQuota != schedule.TotalQuota
	if req.TotalQuota > 0 {
		schedule.TotalQuota = req.TotalQuota
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.scheduleRepo.Update(tx, schedule); err != nil {
		u.log.Warnf("Failed to update schedule: %+v", err)
		return nil, err
	}

	if err := u.auditService.Log(tx, &doctorID, entity.AuditActionScheduleUpdate, entity.JSON{
		"schedule_id": schedule.ID,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	if quotaChanged {
		if err := u.slotService.SyncScheduleQuota(ctx, schedule.ID, schedule.TotalQuota, schedule.ScheduleDate); err != nil {
			u.log.Warnf("Failed to resync slot quota to Redis: %+v", err)
		}
	}

	return converter.ScheduleToResponse(schedule), nil
}

func (u *doctorScheduleUsecase) DeleteSchedule(ctx context.Context, doctorID uuid.UUID, scheduleID int) error {
	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), scheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule: %+v", err)
		return err
	}
	if schedule == nil {
		return ErrScheduleNotFound
	}
	if schedule.DoctorID != doctorID {
		return ErrScheduleNotOwned
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.scheduleRepo.Delete(tx, scheduleID); err != nil {
		u.log.Warnf("Failed to delete schedule: %+v", err)
		return err
	}

	if err := u.auditService.Log(tx, &doctorID, entity.AuditActionScheduleDelete, entity.JSON{
		"schedule_id": scheduleID,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	if err := u.slotService.DeleteScheduleKeys(ctx, scheduleID); err != nil {
		u.log.Warnf("Failed to delete slot keys from Redis: %+v", err)
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
