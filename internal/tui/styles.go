package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("#F97316")
	brand  = lipgloss.Color("#2563EB")
	muted  = lipgloss.Color("#6B7280")
	danger = lipgloss.Color("#DC2626")

	logoStyle    = lipgloss.NewStyle().Bold(true).Foreground(brand)
	taglineStyle = lipgloss.NewStyle().Foreground(muted)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	spinnerStyle = lipgloss.NewStyle().Foreground(accent)

	tabStyle       = lipgloss.NewStyle().Padding(0, 1).Foreground(muted)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).Background(brand)

	badgeStyle = lipgloss.NewStyle().Padding(0, 1).
			Foreground(lipgloss.Color("#FFFFFF")).Background(accent)

	headingStyle = lipgloss.NewStyle().Bold(true)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	descStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
	statusStyle  = lipgloss.NewStyle().Foreground(brand).Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)
	focusedCardStyle = cardStyle.BorderForeground(accent)

	carouselStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(brand).
			Padding(0, 2)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accent).
			Padding(1, 2)

	errorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(danger).
			Foreground(danger).
			Padding(0, 2)
)
