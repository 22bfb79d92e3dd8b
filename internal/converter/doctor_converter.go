package converter

import (
	"github.com/yashsaxena18/curesight-server/internal/delivery/dto"
	"github.com/yashsaxena18/curesight-server/internal/domain/entity"

	"github.com/google/uuid"
)

// DoctorProfileToResponse converts a DoctorProfile entity to its DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorProfileResponse {
	if profile == nil {
		return nil
	}

	response := &dto.DoctorProfileResponse{
		UserID:             profile.UserID,
		LicenseNumber:      profile.LicenseNumber,
		Specialization:     profile.Specialization,
		Biography:          profile.Biography,
		ConsultationFee:    profile.ConsultationFee.String(),
		VerificationStatus: string(profile.VerificationStatus),
		IsVerified:         profile.IsVerified,
		ReviewNotes:        profile.ReviewNotes,
		ReviewedAt:         profile.ReviewedAt,
	}

	if profile.User.ID != uuid.Nil {
		response.FullName = profile.User.FullName
		response.Email = profile.User.Email
	}

	return response
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorProfileResponse {
	responses := make([]dto.DoctorProfileResponse, len(profiles))
	for i, profile := range profiles {
		resp := DoctorProfileToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
