// ABOUTME: Shared lipgloss palette for daybook screens.
// ABOUTME: Keeps colors consistent between the timeline, statistics, and setup views.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	greetingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	dividerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("180")).Bold(true)
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Align(lipgloss.Center)
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)
	cardMetaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	writeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1)
)
