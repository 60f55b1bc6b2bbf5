package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibmemo/internal/ui"
)

var (
	titleStyle   lipgloss.Style
	promptStyle  lipgloss.Style
	indexStyle   lipgloss.Style
	valueStyle   lipgloss.Style
	dimStyle     lipgloss.Style
	errorStyle   lipgloss.Style
	historyStyle lipgloss.Style
)

func init() {
	initStyles()
}

// initStyles rebuilds the styles from the current ui theme. Run calls it
// again after app has applied --no-color.
func initStyles() {
	t := ui.GetCurrentPromptTheme()

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	promptStyle = lipgloss.NewStyle().Foreground(t.Accent)
	indexStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Text)
	valueStyle = lipgloss.NewStyle().Foreground(t.Success)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error)
	historyStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Dim).
		Padding(0, 1)
}
