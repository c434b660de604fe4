package formatter

import (
	"encoding/json"
	"time"

	"github.com/yildizm/PneumoDetect/internal/common"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(report *Report) ([]byte, error) {
	results := report.Results
	if results == nil {
		results = []common.AnalysisResult{}
	}

	output := &JSONOutput{
		Summary: createSummary(report),
		Results: results,
	}
	if len(report.Failures) > 0 {
		output.Failures = report.Failures
	}

	return json.MarshalIndent(output, "", "  ")
}

// JSONOutput is the document written by the json format
type JSONOutput struct {
	Summary  *SummaryOutput          `json:"summary"`
	Results  []common.AnalysisResult `json:"results"`
	Failures []Failure               `json:"failures,omitempty"`
}

// SummaryOutput represents the summary section
type SummaryOutput struct {
	Total          int        `json:"total"`
	Pneumonia      int        `json:"pneumonia"`
	Normal         int        `json:"normal"`
	HighConfidence int        `json:"high_confidence"`
	Failed         int        `json:"failed"`
	GeneratedAt    *time.Time `json:"generated_at,omitempty"`
}

// createSummary counts results per class
func createSummary(report *Report) *SummaryOutput {
	stats := summarize(report.Results)
	summary := &SummaryOutput{
		Total:          len(report.Results),
		Pneumonia:      stats.pneumonia,
		Normal:         stats.normal,
		HighConfidence: stats.highConfidence,
		Failed:         len(report.Failures),
	}
	if !report.GeneratedAt.IsZero() {
		generated := report.GeneratedAt
		summary.GeneratedAt = &generated
	}
	return summary
}
