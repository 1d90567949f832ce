package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// Both surfaces must stay readable on light and dark terminal backgrounds,
// so every color is a lipgloss.AdaptiveColor.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted    = ac("240", "243")
	colorAccent   = ac("27", "75")  // blue
	colorSelected = ac("232", "255")
	colorBorder   = ac("250", "240")
	colorError    = ac("160", "203")
	colorSuccess  = ac("28", "78")
	colorMeta     = ac("238", "250")
	colorFlashBg  = ac("229", "58") // brief highlight after focus-clip
)

var (
	styleTitle    = lipgloss.NewStyle().Bold(true)
	styleMuted    = lipgloss.NewStyle().Foreground(colorMuted)
	styleMeta     = lipgloss.NewStyle().Foreground(colorMeta)
	styleError    = lipgloss.NewStyle().Foreground(colorError)
	styleSuccess  = lipgloss.NewStyle().Foreground(colorSuccess)
	styleAccent   = lipgloss.NewStyle().Foreground(colorAccent)
	styleCard     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
	styleCardHot  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSelected).Padding(0, 1)
	styleFlash    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Background(colorFlashBg).Padding(0, 1)
	styleModalBox = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(1, 2)
)

// applyColorPreference honors NO_COLOR and otherwise follows the terminal's
// capabilities. CLICOLOR/CLICOLOR_FORCE are ignored on purpose: they target
// plain CLI output and would wrongly strip a full-screen UI.
func applyColorPreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
