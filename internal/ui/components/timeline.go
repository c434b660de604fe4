package components

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/PneumoDetect/internal/common"
)

// TimelineChart plots the pneumonia score of past analyses, oldest first
type TimelineChart struct {
	Title    string
	Results  []common.AnalysisResult
	Width    int
	ShowAxis bool
	Palette  Palette
}

// NewTimelineChart creates a new timeline chart
func NewTimelineChart(title string, results []common.AnalysisResult, width int, palette Palette) *TimelineChart {
	return &TimelineChart{
		Title:    title,
		Results:  results,
		Width:    width,
		ShowAxis: true,
		Palette:  palette,
	}
}

// Render renders the timeline chart
func (t *TimelineChart) Render() string {
	ordered := t.ordered()
	if len(ordered) == 0 {
		return ""
	}

	values := make([]float64, len(ordered))
	for i, r := range ordered {
		values[i] = r.Probabilities.Pneumonia
	}

	// scores are probabilities, so the scale is fixed rather than fitted
	chart := NewSparklineChart(values, t.Width)
	chart.Min, chart.Max = 0, 1

	content := []string{t.Palette.title().Render(t.Title), t.Palette.fg(t.Palette.Error).Render(chart.Render())}
	if t.ShowAxis {
		content = append(content, t.Palette.muted().Render(t.renderTimeAxis(ordered)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, content...)
}

// ordered sorts by timestamp; unparsable timestamps keep their relative order at the end
func (t *TimelineChart) ordered() []common.AnalysisResult {
	out := make([]common.AnalysisResult, len(t.Results))
	copy(out, t.Results)
	sort.SliceStable(out, func(i, j int) bool {
		ti, okI := out[i].Time()
		tj, okJ := out[j].Time()
		if okI && okJ {
			return ti.Before(tj)
		}
		return okI && !okJ
	})
	return out
}

// renderTimeAxis labels both ends of the chart
func (t *TimelineChart) renderTimeAxis(ordered []common.AnalysisResult) string {
	first, okFirst := ordered[0].Time()
	last, okLast := ordered[len(ordered)-1].Time()
	if !okFirst || !okLast {
		return ""
	}

	left := first.Local().Format("01-02 15:04")
	right := last.Local().Format("01-02 15:04")
	width := len(ordered)
	if width > t.Width {
		width = t.Width
	}
	gap := width - len(left) - len(right)
	if gap < 1 {
		return fmt.Sprintf("%s → %s (%s)", left, right, formatDuration(last.Sub(first)))
	}
	return left + strings.Repeat(" ", gap) + right
}

// SparklineChart draws values as a single row of block glyphs
type SparklineChart struct {
	Values []float64
	Width  int
	Min    float64
	Max    float64
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// NewSparklineChart creates a chart scaled to the range of values
func NewSparklineChart(values []float64, width int) *SparklineChart {
	chart := &SparklineChart{Values: values, Width: width}
	if len(values) > 0 {
		chart.Min, chart.Max = slices.Min(values), slices.Max(values)
	}
	return chart
}

// level maps v onto an index of sparkLevels
func (s *SparklineChart) level(v float64) int {
	if s.Max <= s.Min {
		return 0
	}
	normalized := math.Max(0, math.Min(1, (v-s.Min)/(s.Max-s.Min)))
	return int(normalized * float64(len(sparkLevels)-1))
}

// Render samples evenly when there are more values than columns
func (s *SparklineChart) Render() string {
	if len(s.Values) == 0 || s.Width < 1 {
		return ""
	}

	columns := min(s.Width, len(s.Values))
	out := make([]rune, columns)
	for i := range out {
		out[i] = sparkLevels[s.level(s.Values[i*len(s.Values)/columns])]
	}
	return string(out)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.1fm", d.Minutes())
	case d < 24*time.Hour:
		return fmt.Sprintf("%.1fh", d.Hours())
	default:
		return fmt.Sprintf("%.1fd", d.Hours()/24)
	}
}
