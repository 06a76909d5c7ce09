package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#A855F7")
	muted  = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#E5E7EB"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FFFFFF"))

	promoStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#EC4899")).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(muted).
			PaddingLeft(1)
	selectedCardStyle = cardStyle.BorderForeground(accent)

	nameStyle       = lipgloss.NewStyle().Bold(true)
	metaStyle       = lipgloss.NewStyle().Foreground(muted)
	attachmentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
)
