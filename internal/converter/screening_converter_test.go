package converter

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yashsaxena18/curesight-server/internal/domain/entity"
)

func TestScreeningJobToResponseHidesRiskUntilCompleted(t *testing.T) {
	job := &entity.ScreeningJob{
		ID:        uuid.New(),
		FileName:  "scan.png",
		Status:    entity.ScreeningStatusAnalyzing,
		RiskScore: decimal.NewFromFloat(0.82),
		Findings:  "suspicious mass upper left quadrant",
	}

	response := ScreeningJobToResponse(job)
	if response.RiskScore != "" {
		t.Errorf("risk score surfaced on analyzing job: %q", response.RiskScore)
	}
	if response.RiskLevel != "" {
		t.Errorf("risk level surfaced on analyzing job: %q", response.RiskLevel)
	}
	if response.Findings != "" {
		t.Errorf("findings surfaced on analyzing job: %q", response.Findings)
	}

	job.Status = entity.ScreeningStatusCompleted
	response = ScreeningJobToResponse(job)
	if response.RiskScore != "0.8200" {
		t.Errorf("risk score = %q, want %q", response.RiskScore, "0.8200")
	}
	if response.RiskLevel != "high" {
		t.Errorf("risk level = %q, want %q", response.RiskLevel, "high")
	}
	if response.Findings == "" {
		t.Error("findings missing on completed job")
	}
}

func TestScreeningJobToResponseNil(t *testing.T) {
	if ScreeningJobToResponse(nil) != nil {
		t.Error("expected nil response for nil job")
	}
}
