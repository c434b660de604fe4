package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/PneumoDetect/internal/emoji"
	"github.com/yildizm/PneumoDetect/internal/toast"
)

const maxVisibleToasts = 3

// renderToasts stacks the newest live notifications against the right edge
func renderToasts(toasts []toast.Toast, styles *Styles, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	if len(toasts) > maxVisibleToasts {
		toasts = toasts[len(toasts)-maxVisibleToasts:]
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style := styles.ToastStyle(t.Type)
		rendered = append(rendered, style.Render(emoji.ForToast(t.Type)+" "+t.Message))
	}

	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	if width <= 0 {
		return stack
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
}
