package converter

import (
	"github.com/yashsaxena18/curesight-server/internal/delivery/dto"
	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:          appointment.ID,
		PatientID:   appointment.PatientID,
		ScheduleID:  appointment.ScheduleID,
		BookingCode: appointment.BookingCode,
		QueueNumber: appointment.QueueNumber,
		Mode:        string(appointment.Mode),
		Symptoms:    appointment.Symptoms,
		Diagnosis:   appointment.Diagnosis,
		DoctorNotes: appointment.DoctorNotes,
		Status:      string(appointment.Status),
		CompletedAt: appointment.CompletedAt,
		CreatedAt:   appointment.CreatedAt,
		UpdatedAt:   appointment.UpdatedAt,
	}

	if appointment.Schedule.ID != 0 {
		response.Schedule = ScheduleToResponse(&appointment.Schedule)
	}

	if len(appointment.Prescriptions) > 0 {
		response.Prescriptions = PrescriptionItemsToResponses(appointment.Prescriptions)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// PrescriptionItemsToResponses converts prescription rows
func PrescriptionItemsToResponses(items []entity.PrescriptionItem) []dto.PrescriptionItemResponse {
	responses := make([]dto.PrescriptionItemResponse, len(items))
	for i, item := range items {
		responses[i] = dto.PrescriptionItemResponse{
			ID:           item.ID,
			Medicine:     item.Medicine,
			Dosage:       item.Dosage,
			Frequency:    item.Frequency,
			Duration:     item.Duration,
			Instructions: item.Instructions,
		}
	}
	return responses
}
