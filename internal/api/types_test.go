package api

import (
	"testing"
	"time"

	"github.com/yildizm/PneumoDetect/internal/common"
)

func TestSubmissionResult(t *testing.T) {
	submitted := time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("ICT", 7*3600))

	tests := []struct {
		name          string
		submission    Submission
		wantErr       bool
		wantTimestamp string
		wantPred      common.Prediction
	}{
		{
			name:          "service timestamp kept",
			submission:    Submission{Prediction: "PNEUMONIA", PneumoniaProbability: 0.8, NormalProbability: 0.2, Timestamp: "2024-01-01T00:00:00Z"},
			wantTimestamp: "2024-01-01T00:00:00Z",
			wantPred:      common.PredictionPneumonia,
		},
		{
			name:          "missing timestamp uses submission time in UTC",
			submission:    Submission{Prediction: "normal", PneumoniaProbability: 0.1, NormalProbability: 0.9},
			wantTimestamp: "2024-03-01T02:30:00Z",
			wantPred:      common.PredictionNormal,
		},
		{
			name:       "unknown label",
			submission: Submission{Prediction: "COVID"},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.submission.Result("id-1", submitted)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if result.ID != "id-1" {
				t.Errorf("Expected id id-1, got %s", result.ID)
			}
			if result.Prediction != tt.wantPred {
				t.Errorf("Expected %s, got %s", tt.wantPred, result.Prediction)
			}
			if result.Timestamp != tt.wantTimestamp {
				t.Errorf("Expected timestamp %s, got %s", tt.wantTimestamp, result.Timestamp)
			}
			if result.Probabilities.Pneumonia != tt.submission.PneumoniaProbability {
				t.Errorf("Expected pneumonia %v, got %v", tt.submission.PneumoniaProbability, result.Probabilities.Pneumonia)
			}
		})
	}
}
