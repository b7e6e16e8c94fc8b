package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/montyhall/internal/ui"
)

// Style variables for the dashboard, rebuilt from the ui theme by
// initTUIStyles.
var (
	panelStyle         lipgloss.Style
	panelTitleStyle    lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	dimStyle           lipgloss.Style
	elapsedStyle       lipgloss.Style
	labelStyle         lipgloss.Style
	valueStyle         lipgloss.Style
	stayStyle          lipgloss.Style
	switchStyle        lipgloss.Style
	barEmptyStyle      lipgloss.Style
	errorStyle         lipgloss.Style
	footerKeyStyle     lipgloss.Style
	footerDescStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	cpuSparklineStyle  lipgloss.Style
	memSparklineStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme. Run calls it
// again after the application has applied --no-color.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()
	fg := func(c lipgloss.TerminalColor) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
	panelTitleStyle = fg(t.Accent).Bold(true)
	headerStyle = fg(t.Accent).Bold(true).Padding(0, 1)
	titleStyle = fg(t.Accent).Bold(true)
	dimStyle = fg(t.Dim)
	elapsedStyle = fg(t.Accent)
	labelStyle = fg(t.Dim)
	valueStyle = fg(t.Text).Bold(true)
	stayStyle = fg(t.Stay).Bold(true)
	switchStyle = fg(t.Switch).Bold(true)
	barEmptyStyle = fg(t.Dim)
	errorStyle = fg(t.Error).Bold(true)
	footerKeyStyle = fg(t.Accent).Bold(true)
	footerDescStyle = fg(t.Dim)
	statusRunningStyle = fg(t.Switch).Bold(true)
	statusPausedStyle = fg(t.Warning).Bold(true)
	statusDoneStyle = fg(t.Accent).Bold(true)
	statusErrorStyle = fg(t.Error).Bold(true)
	cpuSparklineStyle = fg(t.Accent)
	memSparklineStyle = fg(t.Warning)
}
