package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/yashsaxena18/curesight-server/config"
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
	ErrScreeningNotFound = errors.New("screening job not found")
	ErrScreeningNotOwned = errors.New("screening job does not belong to you")
	ErrUnsupportedImage  = errors.New("unsupported image format, use PNG or JPEG")
	ErrFileTooLarge      = errors.New("image exceeds the maximum upload size")
)

// maxUploadSize caps the mammogram file at 20 MB.
const maxUploadSize = 20 << 20

type ScreeningUsecase interface {
	Submit(ctx context.Context, patientID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*dto.ScreeningSubmitResponse, error)
	GetStatus(ctx context.Context, patientID, jobID uuid.UUID) (*dto.ScreeningStatusResponse, error)
	ListMine(ctx context.Context, patientID uuid.UUID) (*dto.ScreeningListResponse, error)
}

type screeningUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	cfg           config.ScreeningConfig
	screeningRepo repository.ScreeningJobRepository
	processor     *service.ScreeningProcessor
	auditService  service.AuditService
}

func NewScreeningUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.ScreeningConfig,
	screeningRepo repository.ScreeningJobRepository,
	processor *service.ScreeningProcessor,
	auditService service.AuditService,
) ScreeningUsecase {
	return &screeningUsecase{
		db:            db,
		log:           log,
		cfg:           cfg,
		screeningRepo: screeningRepo,
		processor:     processor,
		auditService:  auditService,
	}
}

// Submit stores the uploaded mammogram on disk, creates the job row, and
// hands it to the worker pool. The response returns immediately with the
// job id; the client polls GetStatus for progress.
func (u *screeningUsecase) Submit(ctx context.Context, patientID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*dto.ScreeningSubmitResponse, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		return nil, ErrUnsupportedImage
	}

	jobID := uuid.New()
	storedPath := filepath.Join(u.cfg.UploadDir, fmt.Sprintf("%s%s", jobID, ext))

	if err := os.MkdirAll(u.cfg.UploadDir, 0o755); err != nil {
		u.log.Warnf("Failed to create upload directory: %+v", err)
		return nil, err
	}

	dst, err := os.Create(storedPath)
	if err != nil {
		u.log.Warnf("Failed to create upload file: %+v", err)
		return nil, err
	}
	defer dst.Close()

	// Read one byte past the cap so an oversized upload is rejected
	// instead of silently truncated.
	written, err := io.Copy(dst, io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		u.log.Warnf("Failed to store upload: %+v", err)
		os.Remove(storedPath)
		return nil, err
	}
	if written > maxUploadSize {
		os.Remove(storedPath)
		return nil, ErrFileTooLarge
	}

	job := &entity.ScreeningJob{
		ID:        jobID,
		PatientID: patientID,
		FileName:  header.Filename,
		FilePath:  storedPath,
		Status:    entity.ScreeningStatusProcessing,
	}

	tx := u.db.WithContext(ctx).Begin()
	txErr := func() error {
		if err := u.screeningRepo.Create(tx, job); err != nil {
			return err
		}
		if err := u.auditService.Log(tx, &patientID, entity.AuditActionScreeningSubmit, entity.JSON{
			"job_id":    jobID.String(),
			"file_name": header.Filename,
		}); err != nil {
			return err
		}
		return tx.Commit().Error
	}()
	if txErr != nil {
		tx.Rollback()
		os.Remove(storedPath)
		u.log.Warnf("Failed to create screening job: %+v", txErr)
		return nil, txErr
	}

	if err := u.processor.Enqueue(jobID); err != nil {
		// Row stays in processing; the janitor will fail it if nothing
		// picks it up.
		u.log.Errorf("Failed to enqueue screening job %s: %+v", jobID, err)
		return nil, err
	}

	u.log.Infof("Screening job submitted: id=%s, file=%s", jobID, header.Filename)
	return &dto.ScreeningSubmitResponse{
		JobID:  jobID,
		Status: string(entity.ScreeningStatusProcessing),
	}, nil
}

// GetStatus serves the polling endpoint. The Redis cache absorbs the
// repeated polls; the DB is only hit on a cache miss.
func (u *screeningUsecase) GetStatus(ctx context.Context, patientID, jobID uuid.UUID) (*dto.ScreeningStatusResponse, error) {
	job, err := u.screeningRepo.FindByID(u.db.WithContext(ctx), jobID)
	if err != nil {
		u.log.Warnf("Failed to find screening job %s: %+v", jobID, err)
		return nil, err
	}
	if job == nil {
		return nil, ErrScreeningNotFound
	}
	if job.PatientID != patientID {
		return nil, ErrScreeningNotOwned
	}

	if cached := u.processor.GetCachedStatus(ctx, jobID); cached != nil && !job.IsTerminal() {
		return &dto.ScreeningStatusResponse{
			JobID:     jobID,
			FileName:  job.FileName,
			Status:    string(cached.Status),
			RiskScore: cached.RiskScore,
			RiskLevel: cached.RiskLevel,
			Findings:  cached.Findings,
			CreatedAt: job.CreatedAt,
		}, nil
	}

	return converter.ScreeningJobToResponse(job), nil
}

func (u *screeningUsecase) ListMine(ctx context.Context, patientID uuid.UUID) (*dto.ScreeningListResponse, error) {
	jobs, err := u.screeningRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list screening jobs: %+v", err)
		return nil, err
	}

	return &dto.ScreeningListResponse{
		Jobs:  converter.ScreeningJobsToResponses(jobs),
		Total: len(jobs),
	}, nil
}
