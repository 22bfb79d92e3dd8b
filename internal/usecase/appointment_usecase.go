package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
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
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentNotOwned  = errors.New("appointment does not belong to you")
	ErrAlreadyBooked        = errors.New("you already booked this schedule")
	ErrSchedulePast         = errors.New("schedule date has passed")
	ErrAppointmentFinalized = errors.New("appointment is already cancelled or completed")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, userID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	GetPatientAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error)
	CancelAppointment(ctx context.Context, patientID, appointmentID uuid.UUID) error
	RecordConsultation(ctx context.Context, doctorID, appointmentID uuid.UUID, req *dto.RecordConsultationRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	appointmentRepo  repository.AppointmentRepository
	prescriptionRepo repository.PrescriptionItemRepository
	scheduleRepo     repository.DoctorScheduleRepository
	slotService      *service.SlotService
	auditService     service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	prescriptionRepo repository.PrescriptionItemRepository,
	scheduleRepo repository.DoctorScheduleRepository,
	slotService *service.SlotService,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:               db,
		log:              log,
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
		scheduleRepo:     scheduleRepo,
		slotService:      slotService,
		auditService:     auditService,
	}
}

// CreateAppointment books a consultation slot with a Redis-first approach.
//
// Flow:
// 1. Validate schedule exists, is not in the past, and the doctor is verified
// 2. Check the patient hasn't already booked this schedule
// 3. Atomic slot reservation in Redis (DECR quota / INCR queue)
// 4. Insert appointment to DB
// 5. If DB fails, compensate by restoring the Redis slot
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	schedule, err := u.scheduleRepo.FindByID(u.db.WithContext(ctx), req.ScheduleID)
	if err != nil {
		u.log.Warnf("Failed to find schedule %d: %+v", req.ScheduleID, err)
		return nil, err
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if schedule.ScheduleDate.Before(today) {
		return nil, ErrSchedulePast
	}

	if !schedule.Doctor.IsVerified {
		return nil, ErrDoctorNotVerified
	}

	existing, err := u.appointmentRepo.FindByPatientAndSchedule(u.db.WithContext(ctx), patientID, req.ScheduleID)
	if err != nil {
		u.log.Warnf("Failed to check existing appointment: %+v", err)
		return nil, err
	}
	if existing != nil && !existing.IsCancelled() {
		return nil, ErrAlreadyBooked
	}

	// Critical section lives in Redis, not in DB row locks
	queueNumber, err := u.slotService.ReserveSlot(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, service.ErrSlotsFull) {
			return nil, service.ErrSlotsFull
		}
		u.log.Warnf("Failed Redis slot reservation for schedule %d: %+v", req.ScheduleID, err)
		return nil, err
	}

	appointment := &entity.Appointment{
		PatientID:   patientID,
		ScheduleID:  req.ScheduleID,
		BookingCode: generateBookingCode(schedule.ScheduleDate),
		QueueNumber: queueNumber,
		Mode:        entity.ConsultationMode(req.Mode),
		Symptoms:    req.Symptoms,
		Status:      entity.AppointmentStatusPending,
	}

	tx := u.db.WithContext(ctx).Begin()
	txErr := func() error {
		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			return err
		}
		if err := u.auditService.Log(tx, &patientID, entity.AuditActionAppointmentCreate, entity.JSON{
			"appointment_id": appointment.ID.String(),
			"schedule_id":    req.ScheduleID,
			"booking_code":   appointment.BookingCode,
			"queue_number":   queueNumber,
		}); err != nil {
			return err
		}
		return tx.Commit().Error
	}()
	if txErr != nil {
		tx.Rollback()
		u.log.Errorf("Failed to insert appointment, compensating Redis: %+v", txErr)

		syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if restoreErr := u.slotService.RestoreSlot(syncCtx, req.ScheduleID); restoreErr != nil {
			u.log.Errorf("CRITICAL: Failed to restore Redis slot after DB failure for schedule %d: %+v", req.ScheduleID, restoreErr)
		}
		return nil, txErr
	}

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointment.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	u.log.Infof("Appointment created: id=%s, schedule=%d, queue=%d, code=%s",
		appointment.ID, req.ScheduleID, queueNumber, appointment.BookingCode)
	return converter.AppointmentToResponse(full), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, userID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch roleID {
	case entity.RoleIDAdmin:
		// Admins may inspect any appointment
	case entity.RoleIDDoctor:
		if appointment.Schedule.DoctorID != userID {
			return nil, ErrAppointmentNotOwned
		}
	default:
		if appointment.PatientID != userID {
			return nil, ErrAppointmentNotOwned
		}
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetPatientAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetDoctorAppointments(ctx context.Context, doctorID uuid.UUID) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindByDoctorID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// CancelAppointment cancels an appointment and restores the schedule slot.
// The conditional update guards against racing with the doctor completing
// the same appointment.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, patientID, appointmentID uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.PatientID != patientID {
		return ErrAppointmentNotOwned
	}
	if !appointment.CanBeCancelled() {
		return ErrAppointmentFinalized
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	rows, err := u.appointmentRepo.Cancel(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentFinalized
	}

	if err := u.auditService.Log(tx, &patientID, entity.AuditActionAppointmentCancel, entity.JSON{
		"appointment_id": appointmentID.String(),
		"schedule_id":    appointment.ScheduleID,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	// Queue numbers are never reissued; only the quota comes back
	syncCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := u.slotService.RestoreSlot(syncCtx, appointment.ScheduleID); err != nil {
		u.log.Warnf("Failed to restore Redis slot for schedule %d (non-fatal): %+v", appointment.ScheduleID, err)
	}

	u.log.Infof("Appointment cancelled: id=%s, schedule=%d", appointmentID, appointment.ScheduleID)
	return nil
}

// RecordConsultation stores the doctor's diagnosis and prescription items
// and completes the appointment.
func (u *appointmentUsecase) RecordConsultation(ctx context.Context, doctorID, appointmentID uuid.UUID, req *dto.RecordConsultationRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.Schedule.DoctorID != doctorID {
		return nil, ErrAppointmentNotOwned
	}
	if !appointment.CanRecordConsultation() {
		return nil, ErrAppointmentFinalized
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	now := time.Now().UTC()
	rows, err := u.appointmentRepo.Complete(tx, appointmentID, req.Diagnosis, req.DoctorNotes, now)
	if err != nil {
		u.log.Warnf("Failed to complete appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAppointmentFinalized
	}

	if len(req.Prescriptions) > 0 {
		items := make([]entity.PrescriptionItem, len(req.Prescriptions))
		for i, p := range req.Prescriptions {
			items[i] = entity.PrescriptionItem{
				AppointmentID: appointmentID,
				Medicine:      p.Medicine,
				Dosage:        p.Dosage,
				Frequency:     p.Frequency,
				Duration:      p.Duration,
				Instructions:  p.Instructions,
			}
		}
		if err := u.prescriptionRepo.CreateBatch(tx, items); err != nil {
			u.log.Warnf("Failed to create prescription items: %+v", err)
			return nil, err
		}
	}

	if err := u.auditService.Log(tx, &doctorID, entity.AuditActionConsultationRecord, entity.JSON{
		"appointment_id": appointmentID.String(),
		"prescriptions":  len(req.Prescriptions),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	full, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload appointment %s: %+v", appointmentID, err)
		return converter.AppointmentToResponse(appointment), nil
	}

	return converter.AppointmentToResponse(full), nil
}

// generateBookingCode builds a unique booking code: CS-YYYYMMDD-XXXXXX
func generateBookingCode(scheduleDate time.Time) string {
	dateStr := scheduleDate.Format("20060102")
	randomBytes := make([]byte, 3)
	rand.Read(randomBytes)
	return fmt.Sprintf("CS-%s-%06X", dateStr, randomBytes)
}
