// ABOUTME: Unit tests for the top-level app router model.
// ABOUTME: Verifies navigation between timeline and statistics and teardown on quit.
package tui

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/daybook/internal/logging"
)

func newTestApp(opts TimelineOptions) AppModel {
	if opts.MarkdownStyle == "" {
		opts.MarkdownStyle = "notty"
	}
	m := NewAppModel(opts)
	m.now = func() time.Time { return time.Date(2025, 3, 2, 20, 0, 0, 0, time.UTC) }
	return m
}

func updateApp(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(AppModel), cmd
}

func TestApp_StartsOnTimeline(t *testing.T) {
	m := newTestApp(TimelineOptions{})
	if m.Route() != RouteTimeline {
		t.Errorf("expected initial route %q, got %q", RouteTimeline, m.Route())
	}
	if !strings.Contains(m.View(), "Timeline") {
		t.Error("expected timeline view")
	}
}

func TestApp_NavigateToStatisticsAndBack(t *testing.T) {
	m := newTestApp(TimelineOptions{})
	m, _ = updateApp(t, m, snapshotMsg{entries: sampleEntries()})

	m, cmd := updateApp(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if cmd == nil {
		t.Fatal("expected navigation cmd from the timeline")
	}
	m, _ = updateApp(t, m, cmd())
	if m.Route() != RouteStatistics {
		t.Fatalf("expected route %q, got %q", RouteStatistics, m.Route())
	}
	if got := m.stats.Summary().Total; got != 3 {
		t.Errorf("expected statistics over 3 entries, got %d", got)
	}
	if !strings.Contains(m.View(), "Statistics") {
		t.Error("expected statistics view")
	}

	// Navigating again must not stack a second statistics screen.
	m, _ = updateApp(t, m, NavigateMsg{Route: RouteStatistics})
	if len(m.stack) != 2 {
		t.Errorf("expected stack depth 2, got %d", len(m.stack))
	}

	m, cmd = updateApp(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected back cmd")
	}
	m, _ = updateApp(t, m, cmd())
	if m.Route() != RouteTimeline {
		t.Errorf("expected back on timeline, got %q", m.Route())
	}
}

func TestApp_BackOnRootIsNoop(t *testing.T) {
	m := newTestApp(TimelineOptions{})
	m, _ = updateApp(t, m, BackMsg{})
	if m.Route() != RouteTimeline || len(m.stack) != 1 {
		t.Errorf("expected root to stay on the stack, got %v", m.stack)
	}
}

func TestApp_UnknownRouteIgnored(t *testing.T) {
	m := newTestApp(TimelineOptions{})
	m, _ = updateApp(t, m, NavigateMsg{Route: "settings"})
	if m.Route() != RouteTimeline {
		t.Errorf("expected unknown route to be ignored, got %q", m.Route())
	}
}

func TestApp_SnapshotRefreshesStatistics(t *testing.T) {
	m := newTestApp(TimelineOptions{})
	m, _ = updateApp(t, m, NavigateMsg{Route: RouteStatistics})
	if m.stats.Summary().Total != 0 {
		t.Fatal("expected empty statistics")
	}

	m, _ = updateApp(t, m, snapshotMsg{entries: sampleEntries()})
	if m.stats.Summary().Total != 3 {
		t.Errorf("expected statistics refreshed by the feed, got %d", m.stats.Summary().Total)
	}
	if len(m.Timeline().Entries()) != 3 {
		t.Error("expected timeline to keep receiving snapshots underneath")
	}
}

func TestApp_QKeyOnStatisticsGoesBack(t *testing.T) {
	f := &fakeFeed{}
	m := newTestApp(TimelineOptions{Feed: f})
	m.Init()()
	m, _ = updateApp(t, m, NavigateMsg{Route: RouteStatistics})

	_, cmd := updateApp(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected back cmd")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Error("expected q on statistics to go back rather than quit")
	}
	if _, stops := f.counts(); stops != 0 {
		t.Error("expected feed to stay live while statistics is shown")
	}
}

func TestApp_CtrlCClosesFeed(t *testing.T) {
	f := &fakeFeed{}
	m := newTestApp(TimelineOptions{Feed: f})
	m.Init()()
	m, _ = updateApp(t, m, NavigateMsg{Route: RouteStatistics})

	_, cmd := updateApp(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
	if _, stops := f.counts(); stops != 1 {
		t.Errorf("expected feed stopped once, got %d", stops)
	}
	if err := m.Close(); err != nil {
		t.Errorf("expected repeated close to be clean, got %v", err)
	}
	if _, stops := f.counts(); stops != 1 {
		t.Errorf("expected feed still stopped once, got %d", stops)
	}
}

func TestApp_CtrlCLogsStopError(t *testing.T) {
	var buf bytes.Buffer
	f := &fakeFeed{stopErr: errors.New("poll loop wedged")}
	m := newTestApp(TimelineOptions{Feed: f, Logger: logging.New(&buf, slog.LevelDebug)})
	m.Init()()

	_, cmd := updateApp(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit cmd")
	}
	out := buf.String()
	if !strings.Contains(out, "failed to stop diary feed") || !strings.Contains(out, "poll loop wedged") {
		t.Errorf("expected stop error logged, got %q", out)
	}
}

func TestApp_WindowSizeReachesStatistics(t *testing.T) {
	m := newTestApp(TimelineOptions{})
	m, _ = updateApp(t, m, tea.WindowSizeMsg{Width: 70, Height: 30})
	m, _ = updateApp(t, m, NavigateMsg{Route: RouteStatistics})
	if m.stats.width != 70 {
		t.Errorf("expected statistics to get the window width, got %d", m.stats.width)
	}
}

func TestApp_FullFlowWithTeaProgram(t *testing.T) {
	f := &fakeFeed{}
	m := newTestApp(TimelineOptions{Feed: f})

	p := tea.NewProgram(m, tea.WithInput(nil), tea.WithoutRenderer())
	go func() {
		for {
			if starts, _ := f.counts(); starts > 0 {
				break
			}
			time.Sleep(5 * time.Millisecond)
		}
		f.push(sampleEntries()...)
		time.Sleep(20 * time.Millisecond)
		p.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	}()

	result, err := p.Run()
	if err != nil {
		t.Fatalf("tea.Program error: %v", err)
	}
	final := result.(AppModel)
	if len(final.Timeline().Entries()) != 3 {
		t.Errorf("expected pushed entries to reach the timeline, got %d", len(final.Timeline().Entries()))
	}
	if _, stops := f.counts(); stops != 1 {
		t.Errorf("expected feed stopped once on quit, got %d", stops)
	}
}
