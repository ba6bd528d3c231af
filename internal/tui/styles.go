package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent   = lipgloss.Color("#60A5FA")
	muted    = lipgloss.Color("#9CA3AF")
	text     = lipgloss.Color("#E5EDFF")
	positive = lipgloss.Color("#4ADE80")
	warning  = lipgloss.Color("#F97373")
	border   = lipgloss.Color("#374151")

	brandStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(text)

	chipStyle = lipgloss.NewStyle().
			Foreground(muted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(muted).
			Bold(true)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(28)

	profileStyle = lipgloss.NewStyle().
			Foreground(text).
			Padding(0, 1)

	activeProfileStyle = lipgloss.NewStyle().
				Foreground(text).
				Background(lipgloss.Color("#1E3A8A")).
				Bold(true).
				Padding(0, 1)

	tagStyle = lipgloss.NewStyle().
			Foreground(muted)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(text)

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1).
			Width(30)

	focusedCardStyle = cardStyle.
				BorderForeground(accent)

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(text)

	captionStyle = lipgloss.NewStyle().
			Foreground(muted)

	positiveStyle = lipgloss.NewStyle().
			Foreground(positive)

	warningStyle = lipgloss.NewStyle().
			Foreground(warning)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(warning)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(muted)
)
