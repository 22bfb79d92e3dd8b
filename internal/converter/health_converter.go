package converter

import (
	"github.com/yashsaxena18/curesight-server/internal/delivery/dto"
	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
	"github.com/yashsaxena18/curesight-server/internal/domain/repository"
)

const logDateLayout = "2006-01-02"

// DailyLogToResponse converts a DailyHealthLog entity to its DTO
func DailyLogToResponse(log *entity.DailyHealthLog) *dto.DailyLogResponse {
	if log == nil {
		return nil
	}
	return &dto.DailyLogResponse{
		ID:           log.ID,
		LogDate:      log.LogDate.Format(logDateLayout),
		Mood:         log.Mood,
		SleepHours:   log.SleepHours,
		WaterGlasses: log.WaterGlasses,
		Steps:        log.Steps,
		SymptomsNote: log.SymptomsNote,
		UpdatedAt:    log.UpdatedAt,
	}
}

// DailyLogsToResponses converts a slice of DailyHealthLog entities
func DailyLogsToResponses(logs []entity.DailyHealthLog) []dto.DailyLogResponse {
	responses := make([]dto.DailyLogResponse, len(logs))
	for i, log := range logs {
		responses[i] = *DailyLogToResponse(&log)
	}
	return responses
}

// HealthMetricsToResponse converts aggregated metrics to their DTO
func HealthMetricsToResponse(metrics *repository.HealthMetrics, from, to string) *dto.HealthMetricsResponse {
	if metrics == nil {
		return nil
	}
	return &dto.HealthMetricsResponse{
		From:       from,
		To:         to,
		LogCount:   metrics.LogCount,
		AvgSleep:   metrics.AvgSleep,
		AvgWater:   metrics.AvgWater,
		TotalSteps: metrics.TotalSteps,
		AvgSteps:   metrics.AvgSteps,
	}
}

// HealthRecordToResponse converts a HealthRecord entity to its DTO
func HealthRecordToResponse(record *entity.HealthRecord) *dto.HealthRecordResponse {
	if record == nil {
		return nil
	}
	return &dto.HealthRecordResponse{
		ID:         record.ID,
		RecordType: string(record.RecordType),
		Title:      record.Title,
		FilePath:   record.FilePath,
		Tags:       tagsFromJSON(record.Tags),
		CreatedAt:  record.CreatedAt,
	}
}

// HealthRecordsToResponses converts a slice of HealthRecord entities
func HealthRecordsToResponses(records []entity.HealthRecord) []dto.HealthRecordResponse {
	responses := make([]dto.HealthRecordResponse, len(records))
	for i, record := range records {
		responses[i] = *HealthRecordToResponse(&record)
	}
	return responses
}

// tagsFromJSON unpacks the tags list stored in the jsonb column
func tagsFromJSON(data entity.JSON) []string {
	raw, ok := data["tags"].([]interface{})
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(raw))
	for _, item := range raw {
		if tag, ok := item.(string); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}
