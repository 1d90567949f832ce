package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// renderModalBox frames modal content with a title, centered horizontally.
// Modals replace the card list rather than overlaying it; terminals handle
// the simpler layout more predictably.
func renderModalBox(width int, title, content string) string {
	box := styleModalBox.Render(styleTitle.Render(title) + "\n\n" + content)
	if width <= lipgloss.Width(box) {
		return box
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)
}

func renderConfirmModal(width int, title, body string) string {
	return renderModalBox(width, title,
		body+"\n\n"+styleMuted.Render("y/enter: confirm   n/esc: cancel"))
}
