// ABOUTME: Timeline screen showing the live diary feed with date dividers.
// ABOUTME: Header with greeting, write affordance, and statistics shortcut above a scrollable card list.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/daybook/internal/feed"
	"github.com/2389-research/daybook/internal/logging"
	"github.com/2389-research/daybook/internal/models"
	"github.com/2389-research/daybook/internal/timeline"
)

const emptyMessage = "No diary entries yet.\nWrite your first entry!"

// WriteFunc persists a new diary entry.
type WriteFunc func(ctx context.Context, mood, content string) error

// entryWrittenMsg reports the result of a write from the composer.
type entryWrittenMsg struct {
	err error
}

// TimelineOptions configures a TimelineModel.
type TimelineOptions struct {
	DisplayName   string
	Location      *time.Location
	Feed          feed.Feed
	Write         WriteFunc
	Navigator     Navigator
	Logger        *slog.Logger
	MarkdownStyle string
}

// TimelineModel is the bubbletea model for the diary timeline.
type TimelineModel struct {
	displayName string
	loc         *time.Location
	feed        feed.Feed
	write       WriteFunc
	nav         Navigator
	logger      *slog.Logger

	sub   *subscription
	cards *cardCache

	entries []*models.DiaryEntry
	rows    []timeline.Row
	content string

	viewport  viewport.Model
	composer  textinput.Model
	composing bool
	moodIdx   int // index into ValidMoods, len(ValidMoods) means no mood

	status string
	err    error
	width  int
	height int
	ready  bool
}

// NewTimelineModel creates a timeline over the given feed.
func NewTimelineModel(opts TimelineOptions) TimelineModel {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	composer := textinput.New()
	composer.Placeholder = "What happened today?"
	composer.CharLimit = 2000
	composer.Width = 50

	m := TimelineModel{
		displayName: opts.DisplayName,
		loc:         loc,
		feed:        opts.Feed,
		write:       opts.Write,
		nav:         opts.Navigator,
		logger:      logger.With("screen", RouteTimeline),
		sub:         newSubscription(),
		cards:       newCardCache(opts.MarkdownStyle),
		composer:    composer,
		moodIdx:     len(models.ValidMoods),
	}
	m.content = m.renderList()
	return m
}

// Init implements tea.Model. It acquires the feed subscription.
func (m TimelineModel) Init() tea.Cmd {
	if m.feed == nil {
		return nil
	}
	sub, f := m.sub, m.feed
	return func() tea.Msg {
		return feedStartedMsg{err: sub.start(context.Background(), f)}
	}
}

// Close releases the feed subscription. Safe without a subscription and safe to repeat.
func (m TimelineModel) Close() error {
	return m.sub.close()
}

// Entries returns the currently displayed snapshot.
func (m TimelineModel) Entries() []*models.DiaryEntry {
	return m.entries
}

// Rows returns the current render rows.
func (m TimelineModel) Rows() []timeline.Row {
	return m.rows
}

// Update implements tea.Model.
func (m TimelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case feedStartedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.logger.Error("failed to start diary feed", "error", msg.err)
			return m, nil
		}
		return m, m.sub.wait

	case snapshotMsg:
		if m.sub.isClosed() {
			return m, nil
		}
		m.applySnapshot(msg.entries)
		return m, m.sub.wait

	case entryWrittenMsg:
		if msg.err != nil {
			m.status = errorStyle.Render("✗ " + msg.err.Error())
			m.logger.Error("failed to write entry", "error", msg.err)
		} else {
			m.status = successStyle.Render("✓ Saved")
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.composing {
			return m.updateComposer(msg)
		}
		return m.updateList(msg)
	}

	if m.composing {
		var cmd tea.Cmd
		m.composer, cmd = m.composer.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *TimelineModel) applySnapshot(entries []*models.DiaryEntry) {
	m.entries = entries
	m.rows = timeline.BuildRows(entries, m.loc)
	if dups := timeline.DuplicateKeys(entries); len(dups) > 0 {
		m.logger.Warn("duplicate entry ids in snapshot", "ids", dups)
	}
	m.logger.Debug("snapshot applied", "entries", len(entries))
	m.refresh()
}

func (m *TimelineModel) resize(width, height int) {
	m.width, m.height = width, height
	listHeight := height - lipgloss.Height(m.headerView()) - lipgloss.Height(m.footerView())
	if listHeight < 1 {
		listHeight = 1
	}
	if !m.ready {
		m.viewport = viewport.New(width, listHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = listHeight
	}
	m.refresh()
}

func (m *TimelineModel) refresh() {
	m.content = m.renderList()
	m.cards.prune(m.rows)
	if m.ready {
		m.viewport.SetContent(m.content)
	}
}

func (m TimelineModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if err := m.Close(); err != nil {
			m.logger.Warn("failed to stop diary feed", "error", err)
		}
		return m, tea.Quit
	case "w":
		if m.write == nil {
			return m, nil
		}
		m.composing = true
		m.status = ""
		m.composer.Focus()
		return m, textinput.Blink
	case "s":
		if m.nav == nil {
			return m, nil
		}
		return m, m.nav.NavigateTo(RouteStatistics)
	case "g", "home":
		m.viewport.GotoTop()
		return m, nil
	case "G", "end":
		m.viewport.GotoBottom()
		return m, nil
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m TimelineModel) updateComposer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if err := m.Close(); err != nil {
			m.logger.Warn("failed to stop diary feed", "error", err)
		}
		return m, tea.Quit
	case tea.KeyEscape:
		m.composing = false
		m.composer.Blur()
		m.composer.Reset()
		return m, nil
	case tea.KeyTab:
		m.moodIdx = (m.moodIdx + 1) % (len(models.ValidMoods) + 1)
		return m, nil
	case tea.KeyShiftTab:
		m.moodIdx = (m.moodIdx + len(models.ValidMoods)) % (len(models.ValidMoods) + 1)
		return m, nil
	case tea.KeyEnter:
		content := strings.TrimSpace(m.composer.Value())
		if content == "" {
			m.status = promptStyle.Render("Nothing to save yet.")
			return m, nil
		}
		m.composing = false
		m.composer.Blur()
		m.composer.Reset()
		mood := m.selectedMood()
		m.moodIdx = len(models.ValidMoods)
		return m, m.saveCmd(mood, content)
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	return m, cmd
}

func (m TimelineModel) saveCmd(mood, content string) tea.Cmd {
	write := m.write
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return entryWrittenMsg{err: write(ctx, mood, content)}
	}
}

func (m TimelineModel) selectedMood() string {
	if m.moodIdx < len(models.ValidMoods) {
		return models.ValidMoods[m.moodIdx]
	}
	return ""
}

func (m TimelineModel) listWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

func (m TimelineModel) renderList() string {
	width := m.listWidth()
	if len(m.rows) == 0 {
		return emptyStyle.Width(width).Render(emptyMessage)
	}

	var b strings.Builder
	for i, row := range m.rows {
		if i > 0 {
			b.WriteString("\n")
		}
		if row.ShowDivider {
			b.WriteString(renderDivider(row.Day, width))
			b.WriteString("\n")
		}
		b.WriteString(m.cards.card(row, m.displayName, m.loc, width))
	}
	return b.String()
}

func (m TimelineModel) greeting() string {
	if m.displayName == "" {
		return "How are you feeling right now?"
	}
	return fmt.Sprintf("How are you feeling right now, %s?", m.displayName)
}

func (m TimelineModel) headerView() string {
	var b strings.Builder

	title := titleStyle.Render("Timeline")
	hint := hintStyle.Render("[s] statistics")
	gap := m.listWidth() - lipgloss.Width(title) - lipgloss.Width(hint)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(title + strings.Repeat(" ", gap) + hint)
	b.WriteString("\n")
	b.WriteString(greetingStyle.Render(m.greeting()))
	b.WriteString("\n")
	b.WriteString(m.writeView())
	b.WriteString("\n")
	return b.String()
}

func (m TimelineModel) writeView() string {
	if m.write == nil {
		return ""
	}
	if !m.composing {
		return writeBoxStyle.Render("✎ [w] Write a new entry")
	}

	mood := "no mood"
	if sel := m.selectedMood(); sel != "" {
		mood = strings.TrimSpace(models.MoodEmoji(sel) + " " + sel)
	}
	return writeBoxStyle.Render(
		"Mood: " + mood + promptStyle.Render("  (tab to change)") + "\n" +
			m.composer.View() + "\n" +
			promptStyle.Render("enter save · esc cancel"),
	)
}

func (m TimelineModel) footerView() string {
	var parts []string
	if m.err != nil {
		parts = append(parts, errorStyle.Render("feed error: "+m.err.Error()))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	parts = append(parts, hintStyle.Render("↑/↓ scroll · w write · s stats · q quit"))
	return strings.Join(parts, "  ")
}

// View implements tea.Model.
func (m TimelineModel) View() string {
	list := m.content
	if m.ready {
		list = m.viewport.View()
	}
	return m.headerView() + list + "\n" + m.footerView()
}
