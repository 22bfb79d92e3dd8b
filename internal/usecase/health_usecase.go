package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/yashsaxena18/curesight-server/internal/converter"
	"github.com/yashsaxena18/curesight-server/internal/delivery/dto"
	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
	"github.com/yashsaxena18/curesight-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrLogDateInFuture = errors.New("log date cannot be in the future")
	ErrInvalidRange    = errors.New("invalid date range")
)

// defaultMetricsDays is the lookback window when the caller gives no range.
const defaultMetricsDays = 30

type HealthUsecase interface {
	SubmitDailyLog(ctx context.Context, patientID uuid.UUID, req *dto.DailyLogRequest) (*dto.DailyLogResponse, error)
	GetDailyLogs(ctx context.Context, patientID uuid.UUID, from, to string) (*dto.DailyLogListResponse, error)
	GetMetrics(ctx context.Context, patientID uuid.UUID, from, to string) (*dto.HealthMetricsResponse, error)
	CreateRecord(ctx context.Context, uploaderID uuid.UUID, req *dto.CreateHealthRecordRequest) (*dto.HealthRecordResponse, error)
	ListRecords(ctx context.Context, uploaderID uuid.UUID) (*dto.HealthRecordListResponse, error)
}

type healthUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	logRepo    repository.DailyHealthLogRepository
	recordRepo repository.HealthRecordRepository
}

func NewHealthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	logRepo repository.DailyHealthLogRepository,
	recordRepo repository.HealthRecordRepository,
) HealthUsecase {
	return &healthUsecase{
		db:         db,
		log:        log,
		logRepo:    logRepo,
		recordRepo: recordRepo,
	}
}

// SubmitDailyLog upserts the patient's wellness entry for the day.
// A second submission for the same date overwrites the first.
func (u *healthUsecase) SubmitDailyLog(ctx context.Context, patientID uuid.UUID, req *dto.DailyLogRequest) (*dto.DailyLogResponse, error) {
	logDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.LogDate != "" {
		parsed, err := time.Parse("2006-01-02", req.LogDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		logDate = parsed
	}
	if logDate.After(time.Now().UTC()) {
		return nil, ErrLogDateInFuture
	}

	healthLog := &entity.DailyHealthLog{
		PatientID:    patientID,
		LogDate:      logDate,
		Mood:         req.Mood,
		SleepHours:   req.SleepHours,
		WaterGlasses: req.WaterGlasses,
		Steps:        req.Steps,
		SymptomsNote: req.SymptomsNote,
	}

	if err := u.logRepo.Upsert(u.db.WithContext(ctx), healthLog); err != nil {
		u.log.Warnf("Failed to upsert daily log: %+v", err)
		return nil, err
	}

	return converter.DailyLogToResponse(healthLog), nil
}

func (u *healthUsecase) GetDailyLogs(ctx context.Context, patientID uuid.UUID, from, to string) (*dto.DailyLogListResponse, error) {
	fromDate, toDate, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}

	logs, err := u.logRepo.FindByPatientAndRange(u.db.WithContext(ctx), patientID, fromDate, toDate)
	if err != nil {
		u.log.Warnf("Failed to find daily logs: %+v", err)
		return nil, err
	}

	return &dto.DailyLogListResponse{
		Logs:  converter.DailyLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *healthUsecase) GetMetrics(ctx context.Context, patientID uuid.UUID, from, to string) (*dto.HealthMetricsResponse, error) {
	fromDate, toDate, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}

	metrics, err := u.logRepo.AggregateMetrics(u.db.WithContext(ctx), patientID, fromDate, toDate)
	if err != nil {
		u.log.Warnf("Failed to aggregate health metrics: %+v", err)
		return nil, err
	}

	return converter.HealthMetricsToResponse(metrics,
		fromDate.Format("2006-01-02"), toDate.Format("2006-01-02")), nil
}

func (u *healthUsecase) CreateRecord(ctx context.Context, uploaderID uuid.UUID, req *dto.CreateHealthRecordRequest) (*dto.HealthRecordResponse, error) {
	record := &entity.HealthRecord{
		UploaderID: uploaderID,
		RecordType: entity.HealthRecordType(req.RecordType),
		Title:      req.Title,
		FilePath:   req.FilePath,
	}
	if len(req.Tags) > 0 {
		tags := make([]interface{}, len(req.Tags))
		for i, tag := range req.Tags {
			tags[i] = tag
		}
		record.Tags = entity.JSON{"tags": tags}
	}

	if err := u.recordRepo.Create(u.db.WithContext(ctx), record); err != nil {
		u.log.Warnf("Failed to create health record: %+v", err)
		return nil, err
	}

	return converter.HealthRecordToResponse(record), nil
}

func (u *healthUsecase) ListRecords(ctx context.Context, uploaderID uuid.UUID) (*dto.HealthRecordListResponse, error) {
	records, err := u.recordRepo.FindByUploaderID(u.db.WithContext(ctx), uploaderID)
	if err != nil {
		u.log.Warnf("Failed to list health records: %+v", err)
		return nil, err
	}

	return &dto.HealthRecordListResponse{
		Records: converter.HealthRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

// parseRange resolves the optional from/to query params, defaulting to the
// last 30 days ending today.
func parseRange(from, to string) (time.Time, time.Time, error) {
	toDate := time.Now().UTC().Truncate(24 * time.Hour)
	if to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDateFormat
		}
		toDate = parsed
	}

	fromDate := toDate.AddDate(0, 0, -defaultMetricsDays)
	if from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDateFormat
		}
		fromDate = parsed
	}

	if fromDate.After(toDate) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}

	return fromDate, toDate, nil
}
