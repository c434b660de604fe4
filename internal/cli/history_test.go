package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yildizm/PneumoDetect/internal/common"
)

type stubHistory struct {
	results []common.AnalysisResult
	err     error
}

func (s *stubHistory) FetchHistory(ctx context.Context) ([]common.AnalysisResult, error) {
	return s.results, s.err
}

func TestFetchHistoryReport(t *testing.T) {
	client := &stubHistory{results: []common.AnalysisResult{
		{ID: "abc-1", Prediction: common.PredictionPneumonia},
		{ID: "abc-2", Prediction: common.PredictionNormal},
		{ID: "xyz-3", Prediction: common.PredictionPneumonia},
		{ID: "ABC-4", Prediction: common.PredictionPneumonia},
	}}

	tests := []struct {
		name     string
		query    historyQuery
		expected []string
	}{
		{"no filters", historyQuery{Filter: common.FilterAll}, []string{"abc-1", "abc-2", "xyz-3", "ABC-4"}},
		{"search is case-insensitive", historyQuery{Search: "abc", Filter: common.FilterAll}, []string{"abc-1", "abc-2", "ABC-4"}},
		{"search and filter combine", historyQuery{Search: "abc", Filter: common.FilterPneumonia}, []string{"abc-1", "ABC-4"}},
		{"limit keeps the newest", historyQuery{Filter: common.FilterPneumonia, Limit: 2}, []string{"abc-1", "xyz-3"}},
		{"no match", historyQuery{Search: "zzz", Filter: common.FilterAll}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := fetchHistoryReport(context.Background(), client, tt.query, testNow)
			if err != nil {
				t.Fatalf("Failed to fetch history: %v", err)
			}
			if len(report.Results) != len(tt.expected) {
				t.Fatalf("Expected %d results, got %d", len(tt.expected), len(report.Results))
			}
			for i, id := range tt.expected {
				if report.Results[i].ID != id {
					t.Errorf("Expected %s at %d, got %s", id, i, report.Results[i].ID)
				}
			}
		})
	}
}

func TestFetchHistoryReportError(t *testing.T) {
	_, err := fetchHistoryReport(context.Background(), &stubHistory{err: errors.New("connection refused")}, historyQuery{}, testNow)
	if err == nil || !strings.Contains(err.Error(), "failed to fetch history") {
		t.Errorf("Expected wrapped fetch error, got %v", err)
	}
}
