package app

import (
	"strings"

	"github.com/yildizm/PneumoDetect/internal/common"
)

// FilterHistory keeps the results whose ID contains query (case-insensitive)
// and whose prediction passes filter. Order is preserved.
func FilterHistory(items []common.AnalysisResult, query string, filter common.PredictionFilter) []common.AnalysisResult {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]common.AnalysisResult, 0, len(items))
	for _, item := range items {
		if query != "" && !strings.Contains(strings.ToLower(item.ID), query) {
			continue
		}
		if !filter.Matches(item.Prediction) {
			continue
		}
		out = append(out, item)
	}
	return out
}
