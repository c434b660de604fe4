package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProbabilityBar renders one class score as a horizontal bar
type ProbabilityBar struct {
	Label   string
	Value   float64 // 0..1
	Width   int
	Fill    lipgloss.TerminalColor
	Palette Palette
}

// NewProbabilityBar creates a bar filled with the palette's success color
func NewProbabilityBar(label string, value float64, width int, palette Palette) *ProbabilityBar {
	return &ProbabilityBar{
		Label:   label,
		Value:   value,
		Width:   width,
		Fill:    palette.Success,
		Palette: palette,
	}
}

// WithFill overrides the fill color
func (p *ProbabilityBar) WithFill(c lipgloss.TerminalColor) *ProbabilityBar {
	p.Fill = c
	return p
}

// Render draws "label [████░░] 62.5%"; out of range values are clamped
func (p *ProbabilityBar) Render() string {
	value := min(max(p.Value, 0), 1)
	filled := min(int(float64(p.Width)*value+0.5), p.Width)

	bar := p.Palette.fg(p.Fill).Bold(true).Render(strings.Repeat("█", filled)) +
		p.Palette.muted().Render(strings.Repeat("░", p.Width-filled))

	out := fmt.Sprintf("[%s] %5.1f%%", bar, value*100)
	if p.Label == "" {
		return out
	}
	return fmt.Sprintf("%-12s %s", p.Label, out)
}

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a braille activity indicator advanced by the tick loop
type Spinner struct {
	Label   string
	Palette Palette
	frame   int
}

// NewSpinner creates a spinner at its first frame
func NewSpinner(palette Palette) *Spinner {
	return &Spinner{Palette: palette}
}

// SetLabel sets the text shown after the spinner
func (s *Spinner) SetLabel(label string) {
	s.Label = label
}

// Tick advances one frame
func (s *Spinner) Tick() {
	s.frame = (s.frame + 1) % len(spinnerFrames)
}

// Render draws the current frame
func (s *Spinner) Render() string {
	frame := s.Palette.fg(s.Palette.Success).Bold(true).Render(spinnerFrames[s.frame])
	if s.Label == "" {
		return frame
	}
	return frame + " " + s.Label
}
