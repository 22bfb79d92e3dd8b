package converter

import (
	"github.com/yashsaxena18/curesight-server/internal/delivery/dto"
	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
	"github.com/yashsaxena18/curesight-server/internal/service"
)

// ScreeningJobToResponse converts a ScreeningJob entity to its DTO.
// Risk fields are only populated once the job has completed.
func ScreeningJobToResponse(job *entity.ScreeningJob) *dto.ScreeningStatusResponse {
	if job == nil {
		return nil
	}

	response := &dto.ScreeningStatusResponse{
		JobID:       job.ID,
		FileName:    job.FileName,
		Status:      string(job.Status),
		FailReason:  job.FailReason,
		CompletedAt: job.CompletedAt,
		CreatedAt:   job.CreatedAt,
	}

	if job.Status == entity.ScreeningStatusCompleted {
		response.RiskScore = job.RiskScore.StringFixed(4)
		response.RiskLevel = service.RiskLevel(job.RiskScore)
		response.Findings = job.Findings
	}

	return response
}

// ScreeningJobsToResponses converts a slice of ScreeningJob entities
func ScreeningJobsToResponses(jobs []entity.ScreeningJob) []dto.ScreeningStatusResponse {
	responses := make([]dto.ScreeningStatusResponse, len(jobs))
	for i, job := range jobs {
		responses[i] = *ScreeningJobToResponse(&job)
	}
	return responses
}
