package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	okColor      = lipgloss.Color("#10B981") // Green
	mutedColor   = lipgloss.Color("#6B7280") // Gray
	accentColor  = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#EF4444") // Red
	fgColor      = lipgloss.Color("#F9FAFB") // Light

	// Layout styles
	AppStyle    = lipgloss.NewStyle().Padding(1, 2)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginBottom(1)

	// List panel (left side)
	ListPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(mutedColor).Padding(0, 1)

	// Detail / reschedule panel (right side)
	DetailPanelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primaryColor).Padding(1, 2)

	// Event list item styles
	SelectedItemStyle = lipgloss.NewStyle().Background(primaryColor).Foreground(fgColor).Bold(true).Padding(0, 1)
	NormalItemStyle   = lipgloss.NewStyle().Foreground(fgColor).Padding(0, 1)
	DayHeadingStyle   = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Padding(0, 1)
	TimeStyle         = lipgloss.NewStyle().Foreground(okColor).Width(12)
	DurationStyle     = lipgloss.NewStyle().Foreground(mutedColor).Width(6)

	// Detail panel styles
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor).MarginBottom(1)
	LabelStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Width(12)
	ValueStyle = lipgloss.NewStyle().Foreground(fgColor)
	LinkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")).Underline(true)

	// Verdict styles
	AllowedStyle   = lipgloss.NewStyle().Background(okColor).Foreground(fgColor).Bold(true).Padding(0, 1)
	BlockedStyle   = lipgloss.NewStyle().Background(errorColor).Foreground(fgColor).Bold(true).Padding(0, 1)
	ViolationStyle = lipgloss.NewStyle().Foreground(errorColor)
	CodeStyle      = lipgloss.NewStyle().Foreground(accentColor).Bold(true)

	// Form styles
	FormLabelStyle   = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	FormFocusedStyle = lipgloss.NewStyle().Foreground(primaryColor)
	FormHintStyle    = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)

	// Help bar
	HelpStyle    = lipgloss.NewStyle().Foreground(mutedColor).MarginTop(1)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
)
