package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yashsaxena18/curesight-server/config"
	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
	"github.com/yashsaxena18/curesight-server/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrQueueFull is returned when the screening queue cannot take more jobs
var ErrQueueFull = errors.New("screening queue is full")

const (
	screeningStatusKeyPrefix = "screening:status:"

	// The SPA polls every 3 seconds; a short TTL keeps polls off Postgres
	// while never serving a stale terminal status for long.
	screeningStatusTTL = 15 * time.Second

	screeningQueueSize = 256
)

// CachedStatus is the Redis-cached poll answer for one screening job.
type CachedStatus struct {
	Status    entity.ScreeningStatus `json:"status"`
	RiskScore string                 `json:"risk_score,omitempty"`
	RiskLevel string                 `json:"risk_level,omitempty"`
	Findings  string                 `json:"findings,omitempty"`
}

// ScreeningProcessor runs the mammogram analysis pipeline: a channel-fed
// worker pool takes jobs from processing through analyzing to a terminal
// status, mirroring each step into Redis for the polling endpoint.
type ScreeningProcessor struct {
	db          *gorm.DB
	log         *logrus.Logger
	jobRepo     repository.ScreeningJobRepository
	redisClient *redis.Client
	analyzer    *AnalyzerClient
	cfg         config.ScreeningConfig

	jobs    chan uuid.UUID
	wg      sync.WaitGroup
	stopped atomic.Bool
}

func NewScreeningProcessor(
	db *gorm.DB,
	log *logrus.Logger,
	jobRepo repository.ScreeningJobRepository,
	redisClient *redis.Client,
	analyzer *AnalyzerClient,
	cfg config.ScreeningConfig,
) *ScreeningProcessor {
	return &ScreeningProcessor{
		db:          db,
		log:         log,
		jobRepo:     jobRepo,
		redisClient: redisClient,
		analyzer:    analyzer,
		cfg:         cfg,
		jobs:        make(chan uuid.UUID, screeningQueueSize),
	}
}

// Start launches the worker goroutines.
func (p *ScreeningProcessor) Start() {
	workers := p.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	p.log.Infof("Screening processor started with %d workers", workers)
}

// Stop drains the queue and waits for in-flight jobs. Safe to call once.
func (p *ScreeningProcessor) Stop() {
	if p.stopped.CompareAndSwap(false, true) {
		close(p.jobs)
		p.wg.Wait()
		p.log.Info("Screening processor stopped")
	}
}

// Enqueue hands a freshly created job to the worker pool without blocking
// the upload request.
func (p *ScreeningProcessor) Enqueue(jobID uuid.UUID) error {
	if p.stopped.Load() {
		return ErrQueueFull
	}
	select {
	case p.jobs <- jobID:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *ScreeningProcessor) worker() {
	defer p.wg.Done()
	for jobID := range p.jobs {
		p.process(jobID)
	}
}

func (p *ScreeningProcessor) process(jobID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.JobTimeout)
	defer cancel()

	job, err := p.jobRepo.FindByID(p.db.WithContext(ctx), jobID)
	if err != nil || job == nil {
		p.log.Warnf("Screening job %s not found for processing: %+v", jobID, err)
		return
	}

	// Claim the job. Zero rows means the janitor already failed it.
	rows, err := p.jobRepo.UpdateStatus(p.db.WithContext(ctx), jobID,
		entity.ScreeningStatusProcessing, entity.ScreeningStatusAnalyzing)
	if err != nil {
		p.log.Warnf("Failed to move screening job %s to analyzing: %+v", jobID, err)
		return
	}
	if rows == 0 {
		p.log.Debugf("Screening job %s no longer in processing, skipping", jobID)
		return
	}
	p.CacheStatus(ctx, jobID, &CachedStatus{Status: entity.ScreeningStatusAnalyzing})

	result, err := p.analyzer.Analyze(ctx, jobID.String(), job.FilePath)
	if err != nil {
		p.fail(jobID, err)
		return
	}

	completedAt := time.Now().UTC()
	if _, err := p.jobRepo.Complete(p.db, jobID, result.RiskScore.String(), result.Findings, completedAt); err != nil {
		p.fail(jobID, fmt.Errorf("store analysis result: %w", err))
		return
	}

	p.CacheStatus(context.Background(), jobID, &CachedStatus{
		Status:    entity.ScreeningStatusCompleted,
		RiskScore: result.RiskScore.String(),
		RiskLevel: RiskLevel(result.RiskScore),
		Findings:  result.Findings,
	})

	p.log.Infof("Screening job %s completed: risk=%s", jobID, result.RiskScore)
}

func (p *ScreeningProcessor) fail(jobID uuid.UUID, cause error) {
	p.log.Warnf("Screening job %s failed: %+v", jobID, cause)

	if _, err := p.jobRepo.Fail(p.db, jobID, cause.Error()); err != nil {
		p.log.Errorf("Failed to mark screening job %s as failed: %+v", jobID, err)
		return
	}
	p.CacheStatus(context.Background(), jobID, &CachedStatus{Status: entity.ScreeningStatusFailed})
}

// CacheStatus mirrors the job status into Redis for the polling endpoint.
func (p *ScreeningProcessor) CacheStatus(ctx context.Context, jobID uuid.UUID, status *CachedStatus) {
	raw, err := json.Marshal(status)
	if err != nil {
		return
	}
	key := screeningStatusKeyPrefix + jobID.String()
	if err := p.redisClient.Set(ctx, key, raw, screeningStatusTTL).Err(); err != nil {
		p.log.Debugf("Failed to cache screening status for %s: %+v", jobID, err)
	}
}

// GetCachedStatus returns the cached poll answer, or nil on a miss.
func (p *ScreeningProcessor) GetCachedStatus(ctx context.Context, jobID uuid.UUID) *CachedStatus {
	key := screeningStatusKeyPrefix + jobID.String()
	raw, err := p.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var status CachedStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil
	}
	return &status
}

// FailStuckJobs is called by the janitor cron: anything sitting in a
// non-terminal status for longer than the job timeout is marked failed.
func (p *ScreeningProcessor) FailStuckJobs() error {
	cutoff := time.Now().UTC().Add(-p.cfg.JobTimeout)
	rows, err := p.jobRepo.FailStuck(p.db, cutoff)
	if err != nil {
		return err
	}
	if rows > 0 {
		p.log.Warnf("Janitor failed %d stuck screening jobs", rows)
	}
	return nil
}
