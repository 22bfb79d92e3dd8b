package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yashsaxena18/curesight-server/internal/domain/entity"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrSlotsFull is returned when a schedule has no remaining slots
var ErrSlotsFull = errors.New("schedule slots are fully booked")

// reserveSlotScript reserves a slot and assigns a queue number in a single
// atomic step inside Redis:
// 1. DECR quota key
// 2. If result < 0 -> INCR back (rollback) and return -1 (full)
// 3. Otherwise INCR queue key and return the queue number
//
// The client sends EVALSHA after the first call, so under load only the
// script hash travels over the wire.
var reserveSlotScript = redis.NewScript(`
	local remaining = redis.call('DECR', KEYS[1])
	if remaining < 0 then
		redis.call('INCR', KEYS[1])
		return -1
	end
	local queue = redis.call('INCR', KEYS[2])
	return queue
`)

const (
	slotQuotaKeyPrefix = "slots:quota:"
	slotQueueKeyPrefix = "slots:queue:"

	// Batch size for the startup re-sync; one pipeline per batch keeps
	// memory flat regardless of how many schedules exist.
	slotSyncBatchSize = 500

	mutexCleanupInterval = 10 * time.Minute
	mutexStaleThreshold  = 10 * time.Minute
)

// SlotService keeps the Redis slot counters consistent with Postgres.
// Bookings hit Redis for the hot path; the database stays the source of
// truth and re-seeds Redis on startup.
type SlotService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger

	// Per-schedule mutex so concurrent sync/restore calls for the same
	// schedule do not interleave.
	scheduleMu sync.Map // map[int]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

type slotSyncRow struct {
	ScheduleID     int
	TotalQuota     int
	RemainingQuota int
	MaxQueueNumber int
	ScheduleDate   time.Time
}

func NewSlotService(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) *SlotService {
	svc := &SlotService{
		db:          db,
		redisClient: redisClient,
		log:         log,
		stopChan:    make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupMutexMapLoop()

	return svc
}

// Stop gracefully shuts down the service. Safe to call multiple times.
func (s *SlotService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("SlotService stopped")
	}
}

// SyncOnStartup re-seeds the Redis counters for every schedule from today
// onward. Queue numbers continue from MAX(queue_number) in the database so
// they stay monotonic across restarts. Call before accepting traffic.
func (s *SlotService) SyncOnStartup(ctx context.Context) error {
	s.log.Info("Starting slot counter re-sync from database...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	offset := 0
	totalSynced := 0

	for {
		var rows []slotSyncRow

		err := s.db.WithContext(ctx).Model(&entity.DoctorSchedule{}).
			Select(`
				doctor_schedules.id as schedule_id,
				doctor_schedules.total_quota,
				doctor_schedules.total_quota - COUNT(CASE WHEN appointments.status IS NOT NULL AND appointments.status != ? THEN 1 END) as remaining_quota,
				COALESCE(MAX(appointments.queue_number), 0) as max_queue_number,
				doctor_schedules.schedule_date
			`, string(entity.AppointmentStatusCancelled)).
			Joins("LEFT JOIN appointments ON appointments.schedule_id = doctor_schedules.id").
			Where("doctor_schedules.schedule_date >= ?", today).
			Group("doctor_schedules.id, doctor_schedules.total_quota, doctor_schedules.schedule_date").
			Order("doctor_schedules.id").
			Limit(slotSyncBatchSize).
			Offset(offset).
			Scan(&rows).Error

		if err != nil {
			return fmt.Errorf("query schedules at offset %d: %w", offset, err)
		}

		if len(rows) == 0 {
			break
		}

		pipe := s.redisClient.TxPipeline()
		for _, row := range rows {
			quotaKey := fmt.Sprintf("%s%d", slotQuotaKeyPrefix, row.ScheduleID)
			queueKey := fmt.Sprintf("%s%d", slotQueueKeyPrefix, row.ScheduleID)
			ttl := s.calculateTTL(row.ScheduleDate)

			pipe.Set(ctx, quotaKey, row.RemainingQuota, ttl)
			pipe.Set(ctx, queueKey, row.MaxQueueNumber, ttl)
		}

		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("pipeline exec at offset %d: %w", offset, err)
		}

		totalSynced += len(rows)

		if len(rows) < slotSyncBatchSize {
			break
		}
		offset += slotSyncBatchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	s.log.Infof("Slot re-sync completed: %d schedules synced in %v", totalSynced, time.Since(startTime))
	return nil
}

// SyncScheduleQuota seeds the counters for a single schedule.
// Called when a schedule is created or its quota changes.
func (s *SlotService) SyncScheduleQuota(ctx context.Context, scheduleID int, totalQuota int, scheduleDate time.Time) error {
	mt := s.getScheduleMutex(scheduleID)
	mt.mu.Lock()
	defer mt.mu.Unlock()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if scheduleDate.Before(today) {
		return nil
	}

	type syncData struct {
		BookedCount    int64
		MaxQueueNumber int
	}
	var data syncData

	err := s.db.WithContext(ctx).Model(&entity.Appointment{}).
		Select("COUNT(*) as booked_count, COALESCE(MAX(queue_number), 0) as max_queue_number").
		Where("schedule_id = ? AND status != ?", scheduleID, entity.AppointmentStatusCancelled).
		Scan(&data).Error
	if err != nil {
		return fmt.Errorf("query appointment data for schedule %d: %w", scheduleID, err)
	}

	remainingQuota := totalQuota - int(data.BookedCount)
	if remainingQuota < 0 {
		remainingQuota = 0
	}

	quotaKey := fmt.Sprintf("%s%d", slotQuotaKeyPrefix, scheduleID)
	queueKey := fmt.Sprintf("%s%d", slotQueueKeyPrefix, scheduleID)
	ttl := s.calculateTTL(scheduleDate)

	pipe := s.redisClient.TxPipeline()
	pipe.Set(ctx, quotaKey, remainingQuota, ttl)
	pipe.Set(ctx, queueKey, data.MaxQueueNumber, ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis sync for schedule %d: %w", scheduleID, err)
	}

	s.log.Debugf("Synced schedule %d: quota=%d, queue=%d", scheduleID, remainingQuota, data.MaxQueueNumber)
	return nil
}

// ReserveSlot atomically takes one slot and returns the queue number.
// No mutex: the Lua script is already atomic inside Redis, and an in-app
// lock would serialize every booking for the schedule.
func (s *SlotService) ReserveSlot(ctx context.Context, scheduleID int) (int, error) {
	quotaKey := fmt.Sprintf("%s%d", slotQuotaKeyPrefix, scheduleID)
	queueKey := fmt.Sprintf("%s%d", slotQueueKeyPrefix, scheduleID)

	result, err := reserveSlotScript.Run(ctx, s.redisClient, []string{quotaKey, queueKey}).Int()
	if err != nil {
		return 0, fmt.Errorf("reserve slot for schedule %d: %w", scheduleID, err)
	}

	if result == -1 {
		return 0, ErrSlotsFull
	}

	return result, nil
}

// RestoreSlot returns a slot after a cancellation or a failed DB insert.
// Queue numbers are never reused, so only the quota moves.
func (s *SlotService) RestoreSlot(ctx context.Context, scheduleID int) error {
	mt := s.getScheduleMutex(scheduleID)
	mt.mu.Lock()
	defer mt.mu.Unlock()

	quotaKey := fmt.Sprintf("%s%d", slotQuotaKeyPrefix, scheduleID)
	if err := s.redisClient.Incr(ctx, quotaKey).Err(); err != nil {
		return fmt.Errorf("restore slot for schedule %d: %w", scheduleID, err)
	}
	return nil
}

// DeleteScheduleKeys removes the counters after a schedule is deleted.
func (s *SlotService) DeleteScheduleKeys(ctx context.Context, scheduleID int) error {
	mt := s.getScheduleMutex(scheduleID)
	mt.mu.Lock()
	defer func() {
		mt.mu.Unlock()
		s.scheduleMu.Delete(scheduleID)
	}()

	quotaKey := fmt.Sprintf("%s%d", slotQuotaKeyPrefix, scheduleID)
	queueKey := fmt.Sprintf("%s%d", slotQueueKeyPrefix, scheduleID)

	if err := s.redisClient.Del(ctx, quotaKey, queueKey).Err(); err != nil {
		return fmt.Errorf("delete slot keys for schedule %d: %w", scheduleID, err)
	}
	return nil
}

func (s *SlotService) getScheduleMutex(scheduleID int) *mutexWithTimestamp {
	mt, _ := s.scheduleMu.LoadOrStore(scheduleID, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

func (s *SlotService) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanupStaleMutexes()
		}
	}
}

func (s *SlotService) cleanupStaleMutexes() {
	cutoffTime := time.Now().Add(-mutexStaleThreshold).Unix()

	s.scheduleMu.Range(func(key, value any) bool {
		scheduleID, ok := key.(int)
		if !ok {
			return true
		}
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		// lastUsed is checked inside the lock so a concurrent user cannot
		// slip in between the check and the delete.
		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffTime {
				s.scheduleMu.Delete(scheduleID)
			}
			mt.mu.Unlock()
		}
		return true
	})
}

// calculateTTL returns a TTL of 24 hours after the schedule date
func (s *SlotService) calculateTTL(scheduleDate time.Time) time.Duration {
	expireAt := scheduleDate.AddDate(0, 0, 1)
	ttl := time.Until(expireAt)
	if ttl <= 0 {
		return 1 * time.Minute
	}
	return ttl
}
