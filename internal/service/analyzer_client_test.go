package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		score string
		want  string
	}{
		{"0", "low"},
		{"0.39", "low"},
		{"0.4", "moderate"},
		{"0.69", "moderate"},
		{"0.7", "high"},
		{"1", "high"},
	}

	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			score, err := decimal.NewFromString(tt.score)
			if err != nil {
				t.Fatal(err)
			}
			if got := RiskLevel(score); got != tt.want {
				t.Errorf("RiskLevel(%s) = %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}

func TestAnalyzerClientAnalyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" {
			t.Errorf("path = %q, want /analyze", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["job_id"] == "" || req["file_path"] == "" {
			t.Errorf("incomplete request payload: %v", req)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"risk_score": "0.8200",
			"findings":   "suspicious mass upper-left quadrant",
		})
	}))
	defer server.Close()

	client := NewAnalyzerClient(server.URL)
	result, err := client.Analyze(context.Background(), "job-1", "/uploads/scan.png")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	want := decimal.NewFromFloat(0.82)
	if !result.RiskScore.Equal(want) {
		t.Errorf("RiskScore = %s, want %s", result.RiskScore, want)
	}
	if result.Findings == "" {
		t.Error("expected non-empty findings")
	}
}

func TestAnalyzerClientRejectsOutOfRangeScore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"risk_score": "1.5"})
	}))
	defer server.Close()

	client := NewAnalyzerClient(server.URL)
	if _, err := client.Analyze(context.Background(), "job-1", "/uploads/scan.png"); err == nil {
		t.Error("expected error for risk score outside [0,1]")
	}
}

func TestAnalyzerClientNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewAnalyzerClient(server.URL)
	if _, err := client.Analyze(context.Background(), "job-1", "/uploads/scan.png"); err == nil {
		t.Error("expected error for non-200 analyzer response")
	}
}
