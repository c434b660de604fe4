package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ListItem represents an item in a list
type ListItem struct {
	ID          string
	Title       string
	Description string
	Status      Status
	Icon        string
	Details     []string // shown under the item while expanded
}

// List represents a navigable list component
type List struct {
	Title       string
	Caption     string // one muted line under the title
	Items       []ListItem
	Selected    int
	Focused     bool
	Width       int
	Height      int
	ShowNumbers bool
	ShowIcons   bool
	Palette     Palette
	expanded    map[string]bool
}

// NewList creates a new list component
func NewList(title string, width, height int) *List {
	return &List{
		Title:       title,
		Width:       width,
		Height:      height,
		ShowNumbers: true,
		ShowIcons:   true,
		Palette:     DefaultPalette(),
		expanded:    make(map[string]bool),
	}
}

// SetItems replaces the items, keeping the selection on the same ID when it is still present
func (l *List) SetItems(items []ListItem) {
	var selectedID string
	if item := l.GetSelectedItem(); item != nil {
		selectedID = item.ID
	}

	l.Items = items
	l.Selected = 0
	for i, item := range items {
		if item.ID == selectedID {
			l.Selected = i
			break
		}
	}
}

// SetFocused sets the focus state of the list
func (l *List) SetFocused(focused bool) {
	l.Focused = focused
}

// GetSelectedItem returns the currently selected item
func (l *List) GetSelectedItem() *ListItem {
	if l.Selected < 0 || l.Selected >= len(l.Items) {
		return nil
	}
	return &l.Items[l.Selected]
}

// MoveUp moves selection up
func (l *List) MoveUp() {
	if l.Selected > 0 {
		l.Selected--
	}
}

// MoveDown moves selection down
func (l *List) MoveDown() {
	if l.Selected < len(l.Items)-1 {
		l.Selected++
	}
}

// ToggleExpanded shows or hides the details of the selected item
func (l *List) ToggleExpanded() {
	item := l.GetSelectedItem()
	if item == nil {
		return
	}
	l.expanded[item.ID] = !l.expanded[item.ID]
}

// IsExpanded reports whether the item with id shows its details
func (l *List) IsExpanded(id string) bool {
	return l.expanded[id]
}

// window returns the half-open range of items that fit, keeping the selection visible
func (l *List) window() (int, int) {
	visible := max(1, l.Height-4)
	first := 0
	if l.Selected >= visible {
		first = l.Selected - visible + 1
	}
	return first, min(first+visible, len(l.Items))
}

// Render draws the title, the visible rows and a position marker when scrolled
func (l *List) Render() string {
	muted := l.Palette.muted()

	var lines []string
	if l.Title != "" {
		lines = append(lines, l.Palette.title().Render(l.Title))
	}
	if l.Caption != "" {
		lines = append(lines, muted.Render(l.Caption))
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}

	first, last := l.window()
	for i := first; i < last; i++ {
		item := &l.Items[i]
		lines = append(lines, l.renderRow(item, i+1, i == l.Selected))
		if !l.expanded[item.ID] {
			continue
		}
		for _, detail := range item.Details {
			lines = append(lines, muted.Render("      "+detail))
		}
	}

	if last-first < len(l.Items) {
		lines = append(lines, "", muted.Render(fmt.Sprintf("(%d-%d of %d)", first+1, last, len(l.Items))))
	}

	border := l.Palette.Border
	if l.Focused {
		border = l.Palette.Title
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(l.Width).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderRow draws one item; the selected row ignores its status color
func (l *List) renderRow(item *ListItem, number int, selected bool) string {
	marker := "  "
	if selected {
		marker = "▶ "
	}

	fields := []string{marker}
	if l.ShowNumbers {
		fields = append(fields, fmt.Sprintf("%2d.", number))
	}
	if l.ShowIcons && item.Icon != "" {
		fields = append(fields, item.Icon)
	}
	text := item.Title
	if item.Description != "" {
		text += " - " + item.Description
	}
	fields = append(fields, text)

	style := l.Palette.fg(l.Palette.For(item.Status))
	if selected {
		style = l.Palette.title().Background(l.Palette.Selected)
	}
	return style.Width(max(1, l.Width-4)).Render(strings.Join(fields, " "))
}
