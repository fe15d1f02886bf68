// ABOUTME: Diary entry card and date divider rendering for the timeline.
// ABOUTME: Caches rendered cards by entry key so unchanged entries are not re-rendered.
package tui

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mattn/go-runewidth"

	"github.com/2389-research/daybook/internal/models"
	"github.com/2389-research/daybook/internal/timeline"
)

const (
	defaultWidth     = 80
	minCardWidth     = 24
	maxCardBodyLines = 8
	maxRenderers     = 4

	// DefaultMarkdownStyle is the glamour style used for card bodies.
	DefaultMarkdownStyle = "dark"
)

type cachedCard struct {
	version  string
	rendered string
}

// cardCache memoizes rendered cards keyed by entry ID.
type cardCache struct {
	style     string
	renderers *lru.Cache[int, *glamour.TermRenderer] // by wrap width
	cards     map[string]cachedCard
	renders   int
}

func newCardCache(style string) *cardCache {
	if style == "" {
		style = DefaultMarkdownStyle
	}
	renderers, _ := lru.New[int, *glamour.TermRenderer](maxRenderers)
	return &cardCache{
		style:     style,
		renderers: renderers,
		cards:     make(map[string]cachedCard),
	}
}

// card returns the rendered card for row, rendering only when the entry or width changed.
func (c *cardCache) card(row timeline.Row, author string, loc *time.Location, width int) string {
	version := cardVersion(row.Entry, author, width)
	if cached, ok := c.cards[row.Key]; ok && cached.version == version {
		return cached.rendered
	}

	rendered := c.renderCard(row.Entry, author, loc, width)
	c.cards[row.Key] = cachedCard{version: version, rendered: rendered}
	c.renders++
	return rendered
}

// prune drops cached cards whose keys are no longer displayed.
func (c *cardCache) prune(rows []timeline.Row) {
	live := make(map[string]bool, len(rows))
	for _, r := range rows {
		live[r.Key] = true
	}
	for key := range c.cards {
		if !live[key] {
			delete(c.cards, key)
		}
	}
}

func (c *cardCache) renderCard(e *models.DiaryEntry, author string, loc *time.Location, width int) string {
	inner := width - 4
	if inner < minCardWidth-4 {
		inner = minCardWidth - 4
	}

	meta := cardMetaStyle.Render(runewidth.Truncate(cardMeta(e, author, loc), inner, "…"))
	body := c.renderBody(e.Content, inner)

	content := meta
	if body != "" {
		content += "\n" + body
	}
	return cardStyle.Width(inner + 2).Render(content)
}

func (c *cardCache) renderBody(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}

	r, ok := c.renderers.Get(width)
	if !ok {
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(c.style),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			c.renderers.Add(width, rr)
			r = rr
		}
	}

	out := md
	if r != nil {
		if rendered, err := r.Render(md); err == nil {
			out = rendered
		}
	}
	out = strings.Trim(out, "\n")

	lines := strings.Split(out, "\n")
	if len(lines) > maxCardBodyLines {
		lines = append(lines[:maxCardBodyLines], "…")
	}
	return strings.Join(lines, "\n")
}

// cardMeta names the entry's own author when it has one; fallback covers
// local entries written before a nickname was set.
func cardMeta(e *models.DiaryEntry, fallback string, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	author := e.Author
	if author == "" {
		author = fallback
	}

	var parts []string
	if e.Mood != "" {
		parts = append(parts, strings.TrimSpace(models.MoodEmoji(e.Mood)+" "+e.Mood))
	}
	parts = append(parts, e.CreatedAt.In(loc).Format("15:04"))
	if author != "" {
		parts = append(parts, author)
	}
	if e.Source == models.SourceRemote {
		parts = append(parts, "☁ synced")
	}
	return strings.Join(parts, " · ")
}

func cardVersion(e *models.DiaryEntry, author string, width int) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(e.Content))
	return fmt.Sprintf("%d|%s|%s|%s|%d|%x", e.CreatedAt.UnixNano(), e.Mood, author, e.Source, width, h.Sum64())
}

// renderDivider renders the calendar-day separator.
func renderDivider(day time.Time, width int) string {
	label := " " + day.Format("Monday, January 2, 2006") + " "
	fill := width - runewidth.StringWidth(label)
	if fill < 4 {
		return dividerStyle.Render(label)
	}
	left := fill / 2
	return dividerStyle.Render(strings.Repeat("─", left) + label + strings.Repeat("─", fill-left))
}
