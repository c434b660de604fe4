package components

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// Status selects the accent a card, row or section is drawn with
type Status int

const (
	StatusNeutral Status = iota
	StatusSuccess
	StatusWarning
	StatusError
	StatusInfo
)

// Palette is the set of colors every component draws with. The ui package
// builds one from the active theme; components fall back to DefaultPalette.
type Palette struct {
	Title    lipgloss.TerminalColor
	Text     lipgloss.TerminalColor
	Muted    lipgloss.TerminalColor
	Border   lipgloss.TerminalColor
	Selected lipgloss.TerminalColor
	Mark     lipgloss.TerminalColor

	Success lipgloss.TerminalColor
	Warning lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Info    lipgloss.TerminalColor

	Pneumonia lipgloss.TerminalColor
	Normal    lipgloss.TerminalColor
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// DefaultPalette matches the default theme
func DefaultPalette() Palette {
	return Palette{
		Title:    adaptive("#1E40AF", "#60A5FA"),
		Text:     adaptive("#111827", "#F9FAFB"),
		Muted:    adaptive("#6B7280", "#9CA3AF"),
		Border:   adaptive("#D1D5DB", "#374151"),
		Selected: adaptive("#DBEAFE", "#1E3A8A"),
		Mark:     adaptive("#FEF3C7", "#1F2937"),
		Success:  adaptive("#059669", "#34D399"),
		Warning:  adaptive("#D97706", "#FBBF24"),
		Error:    adaptive("#DC2626", "#F87171"),
		Info:     adaptive("#0891B2", "#06B6D4"),

		Pneumonia: adaptive("#DC2626", "#F87171"),
		Normal:    adaptive("#059669", "#34D399"),
	}
}

// PlainPalette leaves every color to the terminal
func PlainPalette() Palette {
	none := lipgloss.NoColor{}
	return Palette{
		Title: none, Text: none, Muted: none, Border: none, Selected: none, Mark: none,
		Success: none, Warning: none, Error: none, Info: none,
		Pneumonia: none, Normal: none,
	}
}

// For returns the accent color of s
func (p Palette) For(s Status) lipgloss.TerminalColor {
	switch s {
	case StatusSuccess:
		return p.Success
	case StatusWarning:
		return p.Warning
	case StatusError:
		return p.Error
	case StatusInfo:
		return p.Info
	default:
		return p.Muted
	}
}

func (p Palette) fg(c lipgloss.TerminalColor) lipgloss.Style {
	if c == nil {
		c = lipgloss.NoColor{}
	}
	return lipgloss.NewStyle().Foreground(c)
}

func (p Palette) title() lipgloss.Style {
	return p.fg(p.Title).Bold(true)
}

func (p Palette) muted() lipgloss.Style {
	return p.fg(p.Muted)
}

// Highlight marks every case-insensitive occurrence of term in text.
// Matches are underlined too so they stay visible without color.
func (p Palette) Highlight(text, term string) string {
	if term == "" {
		return text
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(term))
	if err != nil {
		return text
	}

	style := p.title().Underline(true)
	if p.Mark != nil {
		style = style.Background(p.Mark)
	}
	return re.ReplaceAllStringFunc(text, func(match string) string {
		return style.Render(match)
	})
}
