package app

import "github.com/charmbracelet/lipgloss"

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      = ac("240", "243")
	colorAccent     = ac("26", "75")
	colorWarn       = ac("130", "214")
	colorError      = ac("124", "203")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorBorder     = ac("250", "240")

	titleStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle = lipgloss.NewStyle().Foreground(colorError)
	warnStyle  = lipgloss.NewStyle().Foreground(colorWarn)

	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	selectedStyle = lipgloss.NewStyle().
			Background(colorSelectedBg).
			Foreground(colorSelectedFg)
	modifiedStyle = lipgloss.NewStyle().Foreground(colorWarn)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorMuted)
	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Underline(true)

	paneBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(colorBorder)

	panelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().Foreground(colorMuted)
)
