package components

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/PneumoDetect/internal/common"
	"github.com/yildizm/PneumoDetect/internal/emoji"
	"github.com/yildizm/PneumoDetect/internal/i18n"
)

// StatsCard is a boxed count with a title and a caption
type StatsCard struct {
	Title   string
	Value   string
	Caption string
	Icon    string
	Status  Status
	Width   int
	Height  int
	Palette Palette
}

// NewStatsCard creates an info card of the default dashboard size
func NewStatsCard(title, value, caption string) *StatsCard {
	return &StatsCard{
		Title:   title,
		Value:   value,
		Caption: caption,
		Status:  StatusInfo,
		Width:   defaultCardWidth,
		Height:  defaultCardHeight,
		Palette: DefaultPalette(),
	}
}

// WithStatus sets the accent of the value
func (c *StatsCard) WithStatus(status Status) *StatsCard {
	c.Status = status
	return c
}

// WithIcon prefixes the title with icon
func (c *StatsCard) WithIcon(icon string) *StatsCard {
	c.Icon = icon
	return c
}

// Render draws the card
func (c *StatsCard) Render() string {
	title := c.Palette.fg(c.Palette.Info).Bold(true).Render(c.Title)
	if c.Icon != "" {
		title = c.Icon + " " + title
	}

	lines := []string{title, c.Palette.fg(c.Palette.For(c.Status)).Bold(true).Render(c.Value)}
	if c.Caption != "" {
		lines = append(lines, c.Palette.muted().Render(c.Caption))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.Palette.Border).
		Padding(1).
		Width(c.Width).
		Height(c.Height).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

const (
	defaultCardWidth  = 20
	defaultCardHeight = 4
)

// StatsDashboard lays cards out in rows of a fixed column count
type StatsDashboard struct {
	cards   []*StatsCard
	columns int
	width   int
	height  int
	palette Palette
}

// NewStatsDashboard creates an empty dashboard drawn with palette
func NewStatsDashboard(columns int, palette Palette) *StatsDashboard {
	if columns < 1 {
		columns = 1
	}
	return &StatsDashboard{
		columns: columns,
		width:   defaultCardWidth,
		height:  defaultCardHeight,
		palette: palette,
	}
}

// AddCard sizes and recolors card to match the dashboard
func (d *StatsDashboard) AddCard(card *StatsCard) {
	card.Width, card.Height = d.width, d.height
	card.Palette = d.palette
	d.cards = append(d.cards, card)
}

// Cards returns the cards in insertion order
func (d *StatsDashboard) Cards() []*StatsCard {
	return d.cards
}

// SetCardSize resizes every card, including ones added later
func (d *StatsDashboard) SetCardSize(width, height int) {
	d.width, d.height = width, height
	for _, card := range d.cards {
		card.Width, card.Height = width, height
	}
}

// Render draws the cards row by row
func (d *StatsDashboard) Render() string {
	if len(d.cards) == 0 {
		return ""
	}

	rows := make([]string, 0, (len(d.cards)+d.columns-1)/d.columns)
	for start := 0; start < len(d.cards); start += d.columns {
		end := min(start+d.columns, len(d.cards))
		rendered := make([]string, 0, end-start)
		for _, card := range d.cards[start:end] {
			rendered = append(rendered, card.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// HistoryCounts tallies a result history by diagnosis and confidence
type HistoryCounts struct {
	Total          int
	Pneumonia      int
	Normal         int
	HighConfidence int
}

// CountHistory tallies results
func CountHistory(results []common.AnalysisResult) HistoryCounts {
	counts := HistoryCounts{Total: len(results)}
	for _, r := range results {
		if r.Prediction.IsPneumonia() {
			counts.Pneumonia++
		} else {
			counts.Normal++
		}
		if r.Probabilities.HighConfidence() {
			counts.HighConfidence++
		}
	}
	return counts
}

// Share renders part of the total as a percentage
func (c HistoryCounts) Share(part int) string {
	if c.Total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(c.Total)*100)
}

// CreateHistoryStats builds the cards shown above the history list
func CreateHistoryStats(results []common.AnalysisResult, tr *i18n.Translator, palette Palette) *StatsDashboard {
	counts := CountHistory(results)
	dashboard := NewStatsDashboard(4, palette)

	dashboard.AddCard(NewStatsCard(tr.T("analysisHistory"), strconv.Itoa(counts.Total), "").
		WithIcon(emoji.GetEmoji("statistics")))

	// any pneumonia finding turns the card red
	pneumoniaStatus := StatusSuccess
	if counts.Pneumonia > 0 {
		pneumoniaStatus = StatusError
	}
	dashboard.AddCard(NewStatsCard(tr.T("pneumonia"), strconv.Itoa(counts.Pneumonia), counts.Share(counts.Pneumonia)).
		WithStatus(pneumoniaStatus).
		WithIcon(emoji.ForPrediction(true)))

	dashboard.AddCard(NewStatsCard(tr.T("normal"), strconv.Itoa(counts.Normal), counts.Share(counts.Normal)).
		WithStatus(StatusSuccess).
		WithIcon(emoji.ForPrediction(false)))

	dashboard.AddCard(NewStatsCard(tr.T("highConfidence"), strconv.Itoa(counts.HighConfidence), counts.Share(counts.HighConfidence)).
		WithStatus(StatusWarning))

	return dashboard
}

// SummaryBox is a bordered block of aligned key/value rows
type SummaryBox struct {
	Title   string
	Width   int
	Palette Palette
	rows    [][2]string
}

// NewSummaryBox creates an empty summary box
func NewSummaryBox(title string, width int, palette Palette) *SummaryBox {
	return &SummaryBox{Title: title, Width: width, Palette: palette}
}

// AddLine appends a free-form row
func (s *SummaryBox) AddLine(line string) {
	s.rows = append(s.rows, [2]string{"", line})
}

// AddKeyValue appends a row whose key is padded to the widest key
func (s *SummaryBox) AddKeyValue(key, value string) {
	s.rows = append(s.rows, [2]string{key, value})
}

// Render draws the box
func (s *SummaryBox) Render() string {
	keyWidth := 0
	for _, row := range s.rows {
		keyWidth = max(keyWidth, lipgloss.Width(row[0]))
	}

	keyStyle := s.Palette.muted().Width(keyWidth)
	valueStyle := s.Palette.fg(s.Palette.Text)

	lines := make([]string, 0, len(s.rows)+2)
	lines = append(lines, s.Palette.title().Render(s.Title), "")
	for _, row := range s.rows {
		if row[0] == "" {
			lines = append(lines, s.Palette.muted().Render(row[1]))
			continue
		}
		lines = append(lines, keyStyle.Render(row[0])+"  "+valueStyle.Render(row[1]))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Palette.Border).
		Padding(1).
		Width(s.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
