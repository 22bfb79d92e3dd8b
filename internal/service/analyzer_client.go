package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// AnalyzerClient talks to the external mammogram analyzer service. The
// model itself runs out of process; this client only hands the stored file
// over and parses the verdict.
type AnalyzerClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAnalyzerClient(baseURL string) *AnalyzerClient {
	return &AnalyzerClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

type analyzeRequest struct {
	JobID    string `json:"job_id"`
	FilePath string `json:"file_path"`
}

// AnalyzerResult is the analyzer's verdict for one image.
type AnalyzerResult struct {
	RiskScore decimal.Decimal `json:"risk_score"`
	Findings  string          `json:"findings"`
}

func (c *AnalyzerClient) Analyze(ctx context.Context, jobID, filePath string) (*AnalyzerResult, error) {
	body, err := json.Marshal(analyzeRequest{JobID: jobID, FilePath: filePath})
	if err != nil {
		return nil, fmt.Errorf("marshal analyze request: %w", err)
	}

	url := c.baseURL + "/analyze"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call analyzer: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read analyzer response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analyzer returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result AnalyzerResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parse analyzer response: %w", err)
	}

	if result.RiskScore.LessThan(decimal.Zero) || result.RiskScore.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("analyzer returned risk score %s outside [0,1]", result.RiskScore)
	}

	return &result, nil
}

// RiskLevel buckets a risk score for the SPA's result screen.
func RiskLevel(score decimal.Decimal) string {
	switch {
	case score.GreaterThanOrEqual(decimal.NewFromFloat(0.7)):
		return "high"
	case score.GreaterThanOrEqual(decimal.NewFromFloat(0.4)):
		return "moderate"
	default:
		return "low"
	}
}
