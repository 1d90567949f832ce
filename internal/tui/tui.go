package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Bhanujeet/stackpad/internal/bridge"
	"github.com/Bhanujeet/stackpad/internal/clip"
)

// RunCanvas runs the full management surface until the user quits or the
// backend connection drops.
func RunCanvas(client *bridge.Client, clipb clip.Writer) error {
	applyColorPreference()
	p := tea.NewProgram(newCanvas(client, clipb), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("canvas: %w", err)
	}
	return nil
}

// RunSidebar runs the minimal capture-feed surface.
func RunSidebar(client *bridge.Client) error {
	applyColorPreference()
	p := tea.NewProgram(newSidebar(client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("sidebar: %w", err)
	}
	return nil
}
