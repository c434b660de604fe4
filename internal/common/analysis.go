package common

import (
	"time"
)

// Probabilities holds the per-class scores of one classification
type Probabilities struct {
	Pneumonia float64 `json:"pneumonia"`
	Normal    float64 `json:"normal"`
}

// Confidence returns the score of the more likely class
func (p Probabilities) Confidence() float64 {
	if p.Pneumonia > p.Normal {
		return p.Pneumonia
	}
	return p.Normal
}

// HighConfidence reports whether the confidence exceeds HighConfidenceThreshold
func (p Probabilities) HighConfidence() bool {
	return p.Confidence() > HighConfidenceThreshold
}

// AnalysisResult represents one completed classification
type AnalysisResult struct {
	ID            string        `json:"id"`
	Prediction    Prediction    `json:"prediction"`
	Probabilities Probabilities `json:"probabilities"`
	Timestamp     string        `json:"timestamp"`
	ImagePath     string        `json:"image_path,omitempty"`
}

// Time parses the timestamp. Both RFC 3339 and the zone-less ISO form
// produced by Python's isoformat are accepted.
func (r AnalysisResult) Time() (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, r.Timestamp); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders the timestamp with layout, or returns it unchanged when unparsable
func (r AnalysisResult) FormatTimestamp(layout string) string {
	if t, ok := r.Time(); ok {
		return t.Local().Format(layout)
	}
	return r.Timestamp
}
