package service

import (
	"fmt"
	"time"

	"github.com/yashsaxena18/curesight-server/internal/domain/repository"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Notifier pushes a server-originated event to a connected user.
// Implemented by the websocket hub.
type Notifier interface {
	SendToUser(userID uuid.UUID, eventType string, payload interface{}) bool
}

// reminderLead is how far ahead of the consultation the reminder fires.
const reminderLead = 3 * time.Hour

// reminderWindow is the half-width of the check window. The cron runs every
// minute, so a slightly wider window guarantees no appointment falls through
// between two runs.
const reminderWindow = 7 * time.Minute

// CronService owns the background schedules: appointment reminders and the
// stuck screening-job janitor.
type CronService struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	notifier        Notifier
	screening       *ScreeningProcessor

	scheduler *gocron.Scheduler
}

func NewCronService(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	notifier Notifier,
	screening *ScreeningProcessor,
) *CronService {
	return &CronService{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		screening:       screening,
		scheduler:       gocron.NewScheduler(time.UTC),
	}
}

// Start registers the jobs and runs the scheduler in the background.
func (s *CronService) Start() {
	s.scheduler.Every(1).Minutes().Do(func() {
		if err := s.sendAppointmentReminders(); err != nil {
			s.log.Warnf("Appointment reminder run failed: %+v", err)
		}
	})

	s.scheduler.Every(5).Minutes().Do(func() {
		if err := s.screening.FailStuckJobs(); err != nil {
			s.log.Warnf("Screening janitor run failed: %+v", err)
		}
	})

	s.scheduler.StartAsync()
	s.log.Info("Cron scheduler started")
}

// Stop halts the scheduler; running jobs finish their current iteration.
func (s *CronService) Stop() {
	s.scheduler.Stop()
}

// sendAppointmentReminders pushes a reminder over the websocket hub to
// patients whose consultation starts in about three hours. Offline patients
// simply miss the push; reminders are best-effort.
func (s *CronService) sendAppointmentReminders() error {
	now := time.Now().UTC()
	from := now.Add(reminderLead - reminderWindow)
	to := now.Add(reminderLead + reminderWindow)

	appointments, err := s.appointmentRepo.FindUpcomingBetween(s.db, from, to)
	if err != nil {
		return fmt.Errorf("query upcoming appointments: %w", err)
	}

	for _, appointment := range appointments {
		payload := map[string]interface{}{
			"appointment_id": appointment.ID,
			"booking_code":   appointment.BookingCode,
			"doctor_name":    appointment.Schedule.Doctor.User.FullName,
			"schedule_date":  appointment.Schedule.ScheduleDate.Format("2006-01-02"),
			"start_time":     appointment.Schedule.StartTime,
			"mode":           appointment.Mode,
		}

		if s.notifier.SendToUser(appointment.PatientID, "appointment-reminder", payload) {
			s.log.Infof("Reminder delivered for appointment %s", appointment.BookingCode)
		}
	}

	return nil
}
