package common

import (
	"fmt"
	"strings"
)

// Prediction is the label assigned to an X-ray by the classifier
type Prediction string

const (
	PredictionPneumonia Prediction = "Pneumonia"
	PredictionNormal    Prediction = "Normal"
)

// HighConfidenceThreshold is the confidence above which a result is flagged as high confidence
const HighConfidenceThreshold = 0.6

// String returns the canonical label
func (p Prediction) String() string {
	return string(p)
}

// IsPneumonia reports whether the prediction is the pneumonia class
func (p Prediction) IsPneumonia() bool {
	return p == PredictionPneumonia
}

// Valid reports whether p is one of the known labels
func (p Prediction) Valid() bool {
	return p == PredictionPneumonia || p == PredictionNormal
}

// TranslationKey returns the i18n key naming this prediction
func (p Prediction) TranslationKey() string {
	return strings.ToLower(string(p))
}

// ParsePrediction parses a label case-insensitively.
// The backend emits PNEUMONIA/NORMAL, the web client Pneumonia/Normal.
func ParsePrediction(s string) (Prediction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PNEUMONIA":
		return PredictionPneumonia, nil
	case "NORMAL":
		return PredictionNormal, nil
	default:
		return "", fmt.Errorf("unrecognized prediction: %q", s)
	}
}

// PredictionFilter narrows a result list by prediction
type PredictionFilter string

const (
	FilterAll       PredictionFilter = "all"
	FilterPneumonia PredictionFilter = "pneumonia"
	FilterNormal    PredictionFilter = "normal"
)

// ParsePredictionFilter parses a filter name; the empty string means all
func ParsePredictionFilter(s string) (PredictionFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "pneumonia":
		return FilterPneumonia, nil
	case "normal":
		return FilterNormal, nil
	default:
		return "", fmt.Errorf("invalid filter: %s (must be one of: all, pneumonia, normal)", s)
	}
}

// Matches reports whether a prediction passes the filter
func (f PredictionFilter) Matches(p Prediction) bool {
	switch f {
	case FilterPneumonia:
		return p == PredictionPneumonia
	case FilterNormal:
		return p == PredictionNormal
	default:
		return true
	}
}

// Next cycles all -> pneumonia -> normal -> all
func (f PredictionFilter) Next() PredictionFilter {
	switch f {
	case FilterAll:
		return FilterPneumonia
	case FilterPneumonia:
		return FilterNormal
	default:
		return FilterAll
	}
}
