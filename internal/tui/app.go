// ABOUTME: Top-level bubbletea model routing between the timeline and statistics screens.
// ABOUTME: Keeps the timeline mounted underneath so its feed stays live while statistics is shown.
package tui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/daybook/internal/logging"
)

// AppModel owns the route stack.
type AppModel struct {
	timeline TimelineModel
	stats    StatisticsModel
	stack    []string
	loc      *time.Location
	logger   *slog.Logger
	now      func() time.Time
	size     tea.WindowSizeMsg
}

// NewAppModel builds the app with a router-backed Navigator injected into the timeline.
func NewAppModel(opts TimelineOptions) AppModel {
	opts.Navigator = routeNavigator{}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return AppModel{
		timeline: NewTimelineModel(opts),
		stack:    []string{RouteTimeline},
		loc:      opts.Location,
		logger:   logger,
		now:      time.Now,
	}
}

// Route returns the route currently on top.
func (m AppModel) Route() string {
	return m.stack[len(m.stack)-1]
}

// Timeline returns the timeline screen.
func (m AppModel) Timeline() TimelineModel {
	return m.timeline
}

// Close tears down the timeline subscription.
func (m AppModel) Close() error {
	return m.timeline.Close()
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return m.timeline.Init()
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case NavigateMsg:
		return m.navigate(msg.Route)

	case BackMsg:
		if len(m.stack) > 1 {
			m.stack = m.stack[:len(m.stack)-1]
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.size = msg
		var cmd tea.Cmd
		m.timeline, cmd = m.updateTimeline(msg)
		updated, _ := m.stats.Update(msg)
		m.stats = updated.(StatisticsModel)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if err := m.Close(); err != nil {
				m.logger.Warn("failed to stop diary feed", "error", err)
			}
			return m, tea.Quit
		}
		if m.Route() == RouteStatistics {
			updated, cmd := m.stats.Update(msg)
			m.stats = updated.(StatisticsModel)
			return m, cmd
		}
		var cmd tea.Cmd
		m.timeline, cmd = m.updateTimeline(msg)
		return m, cmd
	}

	// Feed, write, and blink messages always belong to the timeline.
	var cmd tea.Cmd
	m.timeline, cmd = m.updateTimeline(msg)
	if _, ok := msg.(snapshotMsg); ok && m.Route() == RouteStatistics {
		m.stats = m.newStats()
	}
	return m, cmd
}

func (m AppModel) navigate(route string) (tea.Model, tea.Cmd) {
	switch route {
	case RouteStatistics:
		if m.Route() != RouteStatistics {
			m.stats = m.newStats()
			m.stack = append(m.stack, RouteStatistics)
		}
	case RouteTimeline:
		m.stack = m.stack[:1]
	default:
		m.logger.Warn("unknown route", "route", route)
	}
	return m, nil
}

func (m AppModel) newStats() StatisticsModel {
	stats := NewStatisticsModel(m.timeline.Entries(), m.loc, m.now())
	if m.size.Width > 0 {
		updated, _ := stats.Update(m.size)
		stats = updated.(StatisticsModel)
	}
	return stats
}

func (m AppModel) updateTimeline(msg tea.Msg) (TimelineModel, tea.Cmd) {
	updated, cmd := m.timeline.Update(msg)
	return updated.(TimelineModel), cmd
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.Route() == RouteStatistics {
		return m.stats.View()
	}
	return m.timeline.View()
}
