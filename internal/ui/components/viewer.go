package components

import (
	"github.com/charmbracelet/lipgloss"
)

// DetailSection is a titled group of wrapped lines
type DetailSection struct {
	Title   string
	Content []string
	Status  Status
}

// DetailViewer stacks sections inside a bordered panel
type DetailViewer struct {
	Title    string
	Sections []DetailSection
	Width    int
	Height   int // 0 means unbounded
	Palette  Palette
}

// NewDetailViewer creates an empty viewer
func NewDetailViewer(title string, width, height int, palette Palette) *DetailViewer {
	return &DetailViewer{
		Title:   title,
		Width:   width,
		Height:  height,
		Palette: palette,
	}
}

// AddSection appends a section
func (d *DetailViewer) AddSection(section DetailSection) {
	d.Sections = append(d.Sections, section)
}

// Render draws the panel
func (d *DetailViewer) Render() string {
	var lines []string
	if d.Title != "" {
		lines = append(lines, d.Palette.title().Render(d.Title), "")
	}

	body := d.Palette.fg(d.Palette.Text)
	if wrap := d.Width - 6; wrap > 0 {
		body = body.Width(wrap)
	}

	for i, section := range d.Sections {
		if i > 0 {
			lines = append(lines, "")
		}
		if section.Title != "" {
			lines = append(lines, d.Palette.fg(d.Palette.For(section.Status)).Bold(true).Render(section.Title))
		}
		for _, line := range section.Content {
			lines = append(lines, "  "+body.Render(line))
		}
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(d.Palette.Border).
		Padding(0, 1).
		Width(d.Width)
	if d.Height > 0 {
		panel = panel.MaxHeight(d.Height)
	}
	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
