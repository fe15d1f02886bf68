// ABOUTME: Statistics screen summarizing moods, streaks, and recent activity.
// ABOUTME: Reached from the timeline; esc or q returns to it.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/2389-research/daybook/internal/models"
	"github.com/2389-research/daybook/internal/timeline"
)

const maxBarWidth = 30

// StatisticsModel renders a timeline.Summary.
type StatisticsModel struct {
	summary timeline.Summary
	loc     *time.Location
	width   int
}

// NewStatisticsModel summarizes entries as of now.
func NewStatisticsModel(entries []*models.DiaryEntry, loc *time.Location, now time.Time) StatisticsModel {
	if loc == nil {
		loc = time.UTC
	}
	return StatisticsModel{
		summary: timeline.Summarize(entries, loc, now),
		loc:     loc,
	}
}

// Summary returns the statistics being displayed.
func (m StatisticsModel) Summary() timeline.Summary {
	return m.summary
}

// Init implements tea.Model.
func (m StatisticsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m StatisticsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "backspace", "left", "h":
			return m, Back()
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m StatisticsModel) View() string {
	s := m.summary
	var b strings.Builder

	b.WriteString(titleStyle.Render("Statistics"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  Entries:        %d\n", s.Total))
	b.WriteString(fmt.Sprintf("  Days written:   %d\n", s.DaysWritten))
	b.WriteString(fmt.Sprintf("  Current streak: %s\n", plural(s.CurrentStreak, "day")))
	b.WriteString(fmt.Sprintf("  Longest streak: %s\n", plural(s.LongestStreak, "day")))
	b.WriteString("\n")

	b.WriteString(stepStyle.Render("Moods"))
	b.WriteString("\n")
	maxMood := 0
	for _, mc := range s.Moods {
		if mc.Count > maxMood {
			maxMood = mc.Count
		}
	}
	for _, mc := range s.Moods {
		label := mc.Mood
		if label == "" {
			label = "no mood"
		} else {
			label = strings.TrimSpace(models.MoodEmoji(mc.Mood) + " " + label)
		}
		b.WriteString(fmt.Sprintf("  %s %s %d\n", runewidth.FillRight(label, 12), bar(mc.Count, maxMood), mc.Count))
	}
	b.WriteString("\n")

	b.WriteString(stepStyle.Render(fmt.Sprintf("Last %d days", timeline.RecentDays)))
	b.WriteString("\n")
	maxDay := 0
	for _, dc := range s.Recent {
		if dc.Count > maxDay {
			maxDay = dc.Count
		}
	}
	for _, dc := range s.Recent {
		b.WriteString(fmt.Sprintf("  %s %s %d\n", dc.Day.Format("Mon 01/02"), bar(dc.Count, maxDay), dc.Count))
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("esc back"))
	return b.String()
}

func bar(n, max int) string {
	if n == 0 || max == 0 {
		return ""
	}
	w := n * maxBarWidth / max
	if w < 1 {
		w = 1
	}
	return barStyle.Render(strings.Repeat("█", w))
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
