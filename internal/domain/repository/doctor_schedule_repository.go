package repository

import (
	"github.com/yashsaxena18/curesight-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleFilter is a domain-level filter for querying schedules.
// Used by repository layer to avoid coupling with delivery DTOs.
type ScheduleFilter struct {
	StartAt        string // Format: YYYY-MM-DD
	EndAt          string // Format: YYYY-MM-DD
	DoctorName     string // Filter by doctor name (ILIKE)
	Specialization string // Filter by specialization (ILIKE)
}

type DoctorScheduleRepository interface {
	Create(db *gorm.DB, schedule *entity.DoctorSchedule) error
	FindByID(db *gorm.DB, id int) (*entity.DoctorSchedule, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorSchedule, error)
	FindAllWithVerifiedDoctor(db *gorm.DB, filter *ScheduleFilter) ([]entity.DoctorSchedule, error)
	Update(db *gorm.DB, schedule *entity.DoctorSchedule) error
	Delete(db *gorm.DB, id int) error
}
