package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/yildizm/PneumoDetect/internal/common"
)

// csvColumn renders one field of a result row
type csvColumn struct {
	header string
	value  func(common.AnalysisResult) string
}

var csvColumns = []csvColumn{
	{"ID", func(r common.AnalysisResult) string { return r.ID }},
	{"Prediction", func(r common.AnalysisResult) string { return r.Prediction.String() }},
	{"Pneumonia Probability", func(r common.AnalysisResult) string { return probability(r.Probabilities.Pneumonia) }},
	{"Normal Probability", func(r common.AnalysisResult) string { return probability(r.Probabilities.Normal) }},
	{"Confidence", func(r common.AnalysisResult) string { return probability(r.Probabilities.Confidence()) }},
	{"Timestamp", func(r common.AnalysisResult) string { return r.Timestamp }},
	{"Image Path", func(r common.AnalysisResult) string { return singleLine(r.ImagePath) }},
}

// csvFormatter writes one row per result, then one row per failure with only
// the image path and the error filled in
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(report *Report) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)

	width := len(csvColumns) + 1
	header := make([]string, 0, width)
	for _, col := range csvColumns {
		header = append(header, col.header)
	}
	if err := w.Write(append(header, "Error")); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, r := range report.Results {
		row := make([]string, 0, width)
		for _, col := range csvColumns {
			row = append(row, col.value(r))
		}
		if err := w.Write(append(row, "")); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	pathColumn := len(csvColumns) - 1
	for _, failure := range report.Failures {
		row := make([]string, width)
		row[pathColumn] = singleLine(failure.Path)
		row[width-1] = singleLine(failure.Error)
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return b.Bytes(), nil
}

func probability(p float64) string {
	return fmt.Sprintf("%.4f", p)
}

// singleLine keeps each record on one physical line
func singleLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
