package api

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/yildizm/PneumoDetect/internal/common"
)

// Submission is the classification returned for one uploaded image
type Submission struct {
	Prediction           string  `json:"result"`
	PneumoniaProbability float64 `json:"pneumonia_prob"`
	NormalProbability    float64 `json:"normal_prob"`
	Timestamp            string  `json:"timestamp"`
	ImagePath            string  `json:"image_path"`
}

// Result converts the submission into a result with the given id.
// A missing timestamp is replaced by submitted.
func (s *Submission) Result(id string, submitted time.Time) (common.AnalysisResult, error) {
	prediction, err := common.ParsePrediction(s.Prediction)
	if err != nil {
		return common.AnalysisResult{}, err
	}

	timestamp := s.Timestamp
	if timestamp == "" {
		timestamp = submitted.UTC().Format(time.RFC3339Nano)
	}

	return common.AnalysisResult{
		ID:         id,
		Prediction: prediction,
		Probabilities: common.Probabilities{
			Pneumonia: s.PneumoniaProbability,
			Normal:    s.NormalProbability,
		},
		Timestamp: timestamp,
		ImagePath: s.ImagePath,
	}, nil
}

// analyzeResponse is the wire shape of POST /analyze.
// Numbers stay raw so a string where a number belongs is detectable.
type analyzeResponse struct {
	Result        *string         `json:"result"`
	PneumoniaProb json.RawMessage `json:"pneumonia_prob"`
	NormalProb    json.RawMessage `json:"normal_prob"`
	Timestamp     string          `json:"timestamp"`
	ImagePath     string          `json:"image_path"`
}

// historyRecord is one element of GET /history
type historyRecord struct {
	ID            json.RawMessage `json:"id"`
	Result        *string         `json:"result"`
	PneumoniaProb json.RawMessage `json:"pneumonia_prob"`
	NormalProb    json.RawMessage `json:"normal_prob"`
	AnalyzedAt    string          `json:"analyzed_at"`
	ImagePath     string          `json:"image_path"`
}

// errorResponse is what the service sends alongside a failure status
type errorResponse struct {
	Error string `json:"error"`
}

// parseNumber decodes a JSON number; absent, null and non-numeric values report false
func parseNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	return v, true
}

// parseID accepts a JSON string or number and renders it as a string
func parseID(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, s != ""
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return strconv.FormatInt(i, 10), true
		}
		return strings.TrimSpace(n.String()), true
	}
	return "", false
}
