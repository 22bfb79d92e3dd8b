package converter

import (
	"github.com/yashsaxena18/curesight-server/internal/delivery/dto"
	"github.com/yashsaxena18/curesight-server/internal/domain/entity"

	"github.com/google/uuid"
)

// ScheduleToResponse converts a DoctorSchedule entity to ScheduleResponse DTO
func ScheduleToResponse(schedule *entity.DoctorSchedule) *dto.ScheduleResponse {
	if schedule == nil {
		return nil
	}

	response := &dto.ScheduleResponse{
		ID:           schedule.ID,
		DoctorID:     schedule.DoctorID,
		ScheduleDate: schedule.ScheduleDate.Format("2006-01-02"),
		StartTime:    schedule.StartTime,
		EndTime:      schedule.EndTime,
		TotalQuota:   schedule.TotalQuota,
		CreatedAt:    schedule.CreatedAt,
		UpdatedAt:    schedule.UpdatedAt,
	}

	if schedule.Doctor.UserID != uuid.Nil {
		response.Specialization = schedule.Doctor.Specialization
		if schedule.Doctor.User.ID != uuid.Nil {
			response.DoctorName = schedule.Doctor.User.FullName
		}
	}

	return response
}

// SchedulesToResponses converts a slice of DoctorSchedule entities
func SchedulesToResponses(schedules []entity.DoctorSchedule) []dto.ScheduleResponse {
	responses := make([]dto.ScheduleResponse, len(schedules))
	for i, schedule := range schedules {
		resp := ScheduleToResponse(&schedule)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
