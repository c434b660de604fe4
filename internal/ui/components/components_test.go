package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/PneumoDetect/internal/common"
	"github.com/yildizm/PneumoDetect/internal/i18n"
)

func sampleResults() []common.AnalysisResult {
	return []common.AnalysisResult{
		{ID: "a", Prediction: common.PredictionPneumonia, Probabilities: common.Probabilities{Pneumonia: 0.9, Normal: 0.1}, Timestamp: "2024-05-01T10:00:00Z"},
		{ID: "b", Prediction: common.PredictionNormal, Probabilities: common.Probabilities{Pneumonia: 0.45, Normal: 0.55}, Timestamp: "2024-05-01T09:00:00Z"},
		{ID: "c", Prediction: common.PredictionNormal, Probabilities: common.Probabilities{Pneumonia: 0.2, Normal: 0.8}, Timestamp: "2024-05-01T11:00:00Z"},
		{ID: "d", Prediction: common.PredictionPneumonia, Probabilities: common.Probabilities{Pneumonia: 0.7, Normal: 0.3}, Timestamp: "not a time"},
	}
}

func TestPaletteFor(t *testing.T) {
	p := DefaultPalette()

	tests := []struct {
		status Status
		want   lipgloss.TerminalColor
	}{
		{StatusSuccess, p.Success},
		{StatusWarning, p.Warning},
		{StatusError, p.Error},
		{StatusInfo, p.Info},
		{StatusNeutral, p.Muted},
		{Status(42), p.Muted},
	}

	for _, tt := range tests {
		if got := p.For(tt.status); got != tt.want {
			t.Errorf("For(%d): expected %v, got %v", tt.status, tt.want, got)
		}
	}
}

func TestPlainPaletteHasNoColors(t *testing.T) {
	p := PlainPalette()
	for _, c := range []lipgloss.TerminalColor{p.Title, p.Text, p.Muted, p.Border, p.Selected, p.Mark, p.Success, p.Warning, p.Error, p.Info, p.Pneumonia, p.Normal} {
		if _, ok := c.(lipgloss.NoColor); !ok {
			t.Errorf("Expected NoColor, got %T", c)
		}
	}
}

func TestHighlight(t *testing.T) {
	p := DefaultPalette()

	if got := p.Highlight("abc-123", ""); got != "abc-123" {
		t.Errorf("Expected text unchanged for empty term, got %q", got)
	}
	if got := p.Highlight("abc-123", "zzz"); got != "abc-123" {
		t.Errorf("Expected text unchanged without a match, got %q", got)
	}

	got := p.Highlight("Scan-ABC", "abc")
	if !strings.Contains(got, "ABC") || !strings.HasPrefix(got, "Scan-") {
		t.Errorf("Expected match to keep its original case, got %q", got)
	}

	// regexp metacharacters are matched literally
	if got := p.Highlight("a.b", "."); !strings.Contains(got, "a") || !strings.Contains(got, "b") {
		t.Errorf("Expected literal match, got %q", got)
	}
}

func TestCountHistory(t *testing.T) {
	counts := CountHistory(sampleResults())

	want := HistoryCounts{Total: 4, Pneumonia: 2, Normal: 2, HighConfidence: 3}
	if counts != want {
		t.Errorf("Expected %+v, got %+v", want, counts)
	}
	if got := counts.Share(counts.HighConfidence); got != "75.0%" {
		t.Errorf("Expected 75.0%%, got %s", got)
	}
	if got := (HistoryCounts{}).Share(0); got != "0.0%" {
		t.Errorf("Expected 0.0%% for empty history, got %s", got)
	}
}

func TestCreateHistoryStats(t *testing.T) {
	tr := i18n.NewTranslator(i18n.English)

	tests := []struct {
		name            string
		results         []common.AnalysisResult
		pneumoniaStatus Status
	}{
		{"with pneumonia", sampleResults(), StatusError},
		{"all normal", sampleResults()[1:3], StatusSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dashboard := CreateHistoryStats(tt.results, tr, DefaultPalette())
			dashboard.SetCardSize(30, 5)
			cards := dashboard.Cards()
			if len(cards) != 4 {
				t.Fatalf("Expected 4 cards, got %d", len(cards))
			}
			if cards[1].Status != tt.pneumoniaStatus {
				t.Errorf("Expected pneumonia card status %d, got %d", tt.pneumoniaStatus, cards[1].Status)
			}
			if cards[2].Status != StatusSuccess || cards[3].Status != StatusWarning {
				t.Errorf("Unexpected card statuses: %d %d", cards[2].Status, cards[3].Status)
			}

			out := dashboard.Render()
			for _, want := range []string{tr.T("pneumonia"), tr.T("normal")} {
				if !strings.Contains(out, want) {
					t.Errorf("Expected dashboard to contain %q", want)
				}
			}
		})
	}
}

func TestStatsDashboardSizesCards(t *testing.T) {
	dashboard := NewStatsDashboard(0, PlainPalette())
	dashboard.AddCard(NewStatsCard("one", "1", ""))
	dashboard.SetCardSize(30, 6)
	dashboard.AddCard(NewStatsCard("two", "2", ""))

	for _, card := range dashboard.Cards() {
		if card.Width != 30 || card.Height != 6 {
			t.Errorf("Expected card %q to be 30x6, got %dx%d", card.Title, card.Width, card.Height)
		}
	}
	if NewStatsDashboard(0, PlainPalette()).Render() != "" {
		t.Error("Expected empty dashboard to render nothing")
	}
}

func TestSummaryBoxAlignsKeys(t *testing.T) {
	box := NewSummaryBox("Selected image", 60, PlainPalette())
	box.AddKeyValue("Name", "chest.png")
	box.AddKeyValue("Size", "12.5 KB")
	box.AddLine("preview: file:///tmp/x.png")

	out := box.Render()
	for _, want := range []string{"Selected image", "Name  chest.png", "Size  12.5 KB", "preview: file:///tmp/x.png"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected box to contain %q, got:\n%s", want, out)
		}
	}
}

func TestListKeepsSelectionAcrossUpdates(t *testing.T) {
	l := NewList("History", 60, 10)
	l.SetItems([]ListItem{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	l.MoveDown()
	l.MoveDown()
	l.MoveDown()

	if got := l.GetSelectedItem(); got == nil || got.ID != "c" {
		t.Fatalf("Expected c selected, got %+v", got)
	}

	l.SetItems([]ListItem{{ID: "c"}, {ID: "a"}})
	if l.Selected != 0 {
		t.Errorf("Expected selection to follow c to index 0, got %d", l.Selected)
	}

	l.SetItems([]ListItem{{ID: "x"}})
	if l.Selected != 0 {
		t.Errorf("Expected selection reset, got %d", l.Selected)
	}

	l.SetItems(nil)
	if l.GetSelectedItem() != nil {
		t.Error("Expected no selection in an empty list")
	}
}

func TestListScrollsAndExpands(t *testing.T) {
	l := NewList("", 60, 6)
	items := make([]ListItem, 5)
	for i := range items {
		items[i] = ListItem{ID: string(rune('a' + i)), Title: "item-" + string(rune('a'+i)), Details: []string{"detail-" + string(rune('a'+i))}}
	}
	l.SetItems(items)
	l.Selected = 3

	first, last := l.window()
	if first != 2 || last != 4 {
		t.Fatalf("Expected window [2,4), got [%d,%d)", first, last)
	}

	l.ToggleExpanded()
	if !l.IsExpanded("d") {
		t.Fatal("Expected d to be expanded")
	}

	out := l.Render()
	for _, want := range []string{"item-c", "item-d", "detail-d", "(3-4 of 5)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected list to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "item-a") || strings.Contains(out, "detail-c") {
		t.Errorf("Unexpected rows in:\n%s", out)
	}
}

func TestProbabilityBar(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0.625, " 62.5%"},
		{1.5, "100.0%"},
		{-0.2, "  0.0%"},
	}

	for _, tt := range tests {
		out := NewProbabilityBar("Normal", tt.value, 10, PlainPalette()).Render()
		if !strings.HasPrefix(out, "Normal") {
			t.Errorf("Expected label prefix, got %q", out)
		}
		if !strings.HasSuffix(out, tt.want) {
			t.Errorf("Expected suffix %q for %v, got %q", tt.want, tt.value, out)
		}
	}
}

func TestSpinnerCycles(t *testing.T) {
	s := NewSpinner(PlainPalette())
	s.SetLabel("Analyzing")
	first := s.Render()
	for range spinnerFrames {
		s.Tick()
	}
	if got := s.Render(); got != first {
		t.Errorf("Expected a full cycle to return to %q, got %q", first, got)
	}
	if !strings.HasSuffix(first, " Analyzing") {
		t.Errorf("Expected label, got %q", first)
	}
}

func TestSparklineChart(t *testing.T) {
	chart := NewSparklineChart([]float64{0, 0.5, 1}, 10)
	if got := chart.Render(); got != "▁▄█" {
		t.Errorf("Expected ▁▄█, got %s", got)
	}

	flat := NewSparklineChart([]float64{0.3, 0.3}, 10)
	if got := flat.Render(); got != "▁▁" {
		t.Errorf("Expected flat line, got %s", got)
	}

	sampled := NewSparklineChart([]float64{0, 0.2, 1, 0.9}, 2)
	if got := []rune(sampled.Render()); len(got) != 2 {
		t.Errorf("Expected 2 columns, got %d", len(got))
	}

	if NewSparklineChart(nil, 10).Render() != "" {
		t.Error("Expected empty chart for no values")
	}
}

func TestTimelineChartOrdersByTime(t *testing.T) {
	chart := NewTimelineChart("Trend", sampleResults(), 40, PlainPalette())
	ordered := chart.ordered()

	ids := make([]string, len(ordered))
	for i, r := range ordered {
		ids[i] = r.ID
	}
	if got := strings.Join(ids, ","); got != "b,a,c,d" {
		t.Errorf("Expected b,a,c,d, got %s", got)
	}

	if out := chart.Render(); !strings.Contains(out, "Trend") {
		t.Errorf("Expected title in %q", out)
	}
}

func TestDetailViewer(t *testing.T) {
	viewer := NewDetailViewer("Details", 50, 0, PlainPalette())
	viewer.AddSection(DetailSection{Title: "Recommendation", Content: []string{"Consult a doctor"}, Status: StatusWarning})
	viewer.AddSection(DetailSection{Content: []string{"ID: 42"}})

	out := viewer.Render()
	for _, want := range []string{"Details", "Recommendation", "Consult a doctor", "ID: 42"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected viewer to contain %q, got:\n%s", want, out)
		}
	}
}
