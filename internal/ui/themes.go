package ui

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/PneumoDetect/internal/toast"
	"github.com/yildizm/PneumoDetect/internal/ui/components"
)

// Theme is a named set of adaptive colors for the TUI
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	Border     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Highlight  lipgloss.AdaptiveColor
	Selected   lipgloss.AdaptiveColor

	// diagnosis
	Pneumonia lipgloss.AdaptiveColor
	Normal    lipgloss.AdaptiveColor
}

// ac pairs a light-background and a dark-background color
func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	DefaultTheme = Theme{
		Name:       "default",
		Primary:    ac("#1E40AF", "#3B82F6"),
		Secondary:  ac("#6B7280", "#9CA3AF"),
		Accent:     ac("#7C3AED", "#A855F7"),
		Success:    ac("#059669", "#10B981"),
		Warning:    ac("#D97706", "#F59E0B"),
		Error:      ac("#DC2626", "#EF4444"),
		Info:       ac("#0891B2", "#06B6D4"),
		Border:     ac("#D1D5DB", "#374151"),
		Foreground: ac("#111827", "#F9FAFB"),
		Muted:      ac("#6B7280", "#9CA3AF"),
		Highlight:  ac("#FEF3C7", "#1F2937"),
		Selected:   ac("#DBEAFE", "#1E3A8A"),
		Pneumonia:  ac("#DC2626", "#F87171"),
		Normal:     ac("#059669", "#34D399"),
	}

	HighContrastTheme = Theme{
		Name:       "high-contrast",
		Primary:    ac("#000000", "#FFFFFF"),
		Secondary:  ac("#666666", "#BBBBBB"),
		Accent:     ac("#000080", "#8080FF"),
		Success:    ac("#006600", "#00FF00"),
		Warning:    ac("#CC6600", "#FFAA00"),
		Error:      ac("#CC0000", "#FF4444"),
		Info:       ac("#0066CC", "#4499FF"),
		Border:     ac("#000000", "#FFFFFF"),
		Foreground: ac("#000000", "#FFFFFF"),
		Muted:      ac("#666666", "#BBBBBB"),
		Highlight:  ac("#FFFF00", "#444444"),
		Selected:   ac("#CCCCCC", "#333333"),
		Pneumonia:  ac("#CC0000", "#FF4444"),
		Normal:     ac("#006600", "#00FF00"),
	}

	MinimalTheme = Theme{
		Name:       "minimal",
		Primary:    ac("#2D3748", "#E2E8F0"),
		Secondary:  ac("#718096", "#A0AEC0"),
		Accent:     ac("#4A5568", "#CBD5E0"),
		Success:    ac("#2F855A", "#68D391"),
		Warning:    ac("#C05621", "#F6AD55"),
		Error:      ac("#C53030", "#FC8181"),
		Info:       ac("#2B6CB0", "#63B3ED"),
		Border:     ac("#E2E8F0", "#2D3748"),
		Foreground: ac("#2D3748", "#F7FAFC"),
		Muted:      ac("#A0AEC0", "#718096"),
		Highlight:  ac("#F7FAFC", "#2D3748"),
		Selected:   ac("#EDF2F7", "#2D3748"),
		Pneumonia:  ac("#C53030", "#FC8181"),
		Normal:     ac("#2F855A", "#68D391"),
	}
)

// themes in the order they are listed to users
var themes = []*Theme{&DefaultTheme, &HighContrastTheme, &MinimalTheme}

var (
	themeMu      sync.RWMutex
	currentTheme = DefaultTheme
)

// GetTheme returns the active theme
func GetTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetTheme makes theme the active one
func SetTheme(theme *Theme) {
	themeMu.Lock()
	currentTheme = *theme
	themeMu.Unlock()
}

// SetThemeByName activates a built-in theme; unknown names leave the current one
func SetThemeByName(name string) bool {
	for _, t := range themes {
		if t.Name == name {
			SetTheme(t)
			return true
		}
	}
	return false
}

// GetAvailableThemes lists the built-in theme names
func GetAvailableThemes() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

var colorDisabled atomic.Bool

// SetColorDisabled turns styling off regardless of NO_COLOR
func SetColorDisabled(disabled bool) {
	colorDisabled.Store(disabled)
}

// IsColorDisabled reports whether --no-color, color_mode never or NO_COLOR is in effect
func IsColorDisabled() bool {
	return colorDisabled.Load() || os.Getenv("NO_COLOR") != ""
}

// Palette maps the theme onto the colors the components draw with
func (t Theme) Palette() components.Palette {
	if IsColorDisabled() {
		return components.PlainPalette()
	}
	return components.Palette{
		Title:    t.Primary,
		Text:     t.Foreground,
		Muted:    t.Muted,
		Border:   t.Border,
		Selected: t.Selected,
		Mark:     t.Highlight,
		Success:  t.Success,
		Warning:  t.Warning,
		Error:    t.Error,
		Info:     t.Info,

		Pneumonia: t.Pneumonia,
		Normal:    t.Normal,
	}
}

// Styles are the lipgloss styles the pages render with, derived from one theme
type Styles struct {
	Theme   Theme
	Palette components.Palette

	Title     lipgloss.Style
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// diagnosis labels
	Pneumonia lipgloss.Style
	Normal    lipgloss.Style

	Focused   lipgloss.Style
	Input     lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	toasts map[toast.Type]lipgloss.Style
}

// GetStyles builds styles from the active theme
func GetStyles() *Styles {
	return newStyles(GetTheme())
}

func newStyles(t Theme) *Styles {
	fg := func(c lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	boxed := func(c lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(c).Padding(0, 1)
	}

	return &Styles{
		Theme:   t,
		Palette: t.Palette(),

		Title:     fg(t.Primary).Bold(true).Padding(0, 1),
		Header:    fg(t.Primary).Bold(true),
		Subheader: fg(t.Secondary).Bold(true),
		Body:      fg(t.Foreground),
		Muted:     fg(t.Muted),

		Success: fg(t.Success).Bold(true),
		Warning: fg(t.Warning).Bold(true),
		Info:    fg(t.Info),

		Pneumonia: fg(t.Pneumonia).Bold(true),
		Normal:    fg(t.Normal).Bold(true),

		Focused:   boxed(t.Primary),
		Input:     boxed(t.Accent),
		Tab:       fg(t.Muted).Padding(0, 1),
		TabActive: fg(t.Primary).Background(t.Selected).Bold(true).Padding(0, 1),

		toasts: map[toast.Type]lipgloss.Style{
			toast.TypeSuccess: boxed(t.Success).Foreground(t.Success),
			toast.TypeError:   boxed(t.Error).Foreground(t.Error),
			toast.TypeInfo:    boxed(t.Info).Foreground(t.Info),
		},
	}
}

// ToastStyle returns the style for a notification type; unknown types render as info
func (s *Styles) ToastStyle(t toast.Type) lipgloss.Style {
	if style, ok := s.toasts[t]; ok {
		return style
	}
	return s.toasts[toast.TypeInfo]
}

// Diagnosis returns the style for a prediction
func (s *Styles) Diagnosis(pneumonia bool) lipgloss.Style {
	if pneumonia {
		return s.Pneumonia
	}
	return s.Normal
}
