package formatter

import (
	"fmt"

	"github.com/yildizm/PneumoDetect/internal/common"
	"github.com/yildizm/PneumoDetect/internal/i18n"
	"github.com/yildizm/go-termfmt"
)

type resultStats struct {
	pneumonia      int
	normal         int
	highConfidence int
}

func summarize(results []common.AnalysisResult) resultStats {
	var s resultStats
	for _, r := range results {
		if r.Prediction.IsPneumonia() {
			s.pneumonia++
		} else {
			s.normal++
		}
		if r.Probabilities.HighConfidence() {
			s.highConfidence++
		}
	}
	return s
}

// percent renders a probability as a whole percentage
func percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p*100)
}

// getPredictionEmoji returns the marker for a diagnosis using go-termfmt
func getPredictionEmoji(p common.Prediction, opts *termfmt.TerminalOptions) string {
	if p.IsPneumonia() {
		return termfmt.GetEmoji("warning", opts)
	}
	return termfmt.GetEmoji("info", opts)
}

// createConfidenceBar creates ASCII confidence bar using go-termfmt
func createConfidenceBar(confidence float64) string {
	opts := termfmt.DefaultOptions()
	return termfmt.CreateConfidenceBar(confidence, opts)
}

// confidenceLabel names the confidence band of a result
func confidenceLabel(tr *i18n.Translator, r common.AnalysisResult) string {
	if r.Probabilities.HighConfidence() {
		return tr.T("highConfidence")
	}
	return tr.T("lowConfidence")
}

// descriptionKey and recommendationKey select the per-diagnosis texts
func descriptionKey(p common.Prediction) string {
	return p.TranslationKey() + "Description"
}

func recommendationKey(p common.Prediction) string {
	return p.TranslationKey() + "Recommendation"
}

// timestampLayout falls back to a date-time layout when none is configured
func timestampLayout(o Options) string {
	if o.TimestampFormat == "" {
		return defaultTimestampFormat
	}
	return o.TimestampFormat
}
