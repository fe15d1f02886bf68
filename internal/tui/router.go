// ABOUTME: Screen routing for the daybook TUI.
// ABOUTME: Defines the Navigator contract and the message-based router implementation.
package tui

import tea "github.com/charmbracelet/bubbletea"

// Route names.
const (
	RouteTimeline   = "timeline"
	RouteStatistics = "statistics"
)

// Navigator moves between screens.
type Navigator interface {
	NavigateTo(route string) tea.Cmd
}

// NavigateMsg asks the app to push a route.
type NavigateMsg struct {
	Route string
}

// BackMsg asks the app to pop the current route.
type BackMsg struct{}

// routeNavigator turns navigation requests into messages for AppModel.
type routeNavigator struct{}

// NavigateTo implements Navigator.
func (routeNavigator) NavigateTo(route string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Route: route}
	}
}

// Back returns a command that pops the current route.
func Back() tea.Cmd {
	return func() tea.Msg {
		return BackMsg{}
	}
}
