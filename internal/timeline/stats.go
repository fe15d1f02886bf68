// ABOUTME: Aggregate statistics over diary entries for the statistics screen.
// ABOUTME: Computes totals, streaks, per-mood counts, and a recent-days histogram.
package timeline

import (
	"time"

	"github.com/2389-research/daybook/internal/models"
)

// RecentDays is the width of the recent-activity histogram.
const RecentDays = 7

// MoodCount pairs a mood with the number of entries recorded with it.
type MoodCount struct {
	Mood  string
	Count int
}

// DayCount pairs a calendar day with its number of entries.
type DayCount struct {
	Day   time.Time
	Count int
}

// Summary is the statistics view over an entry collection.
type Summary struct {
	Total         int
	DaysWritten   int
	CurrentStreak int
	LongestStreak int
	Moods         []MoodCount // ValidMoods order, then "" for entries without a mood
	Recent        []DayCount  // oldest first, ending today
}

// civilDay is a calendar date with no time of day. Streak arithmetic runs on
// these so zones whose DST shift lands on midnight still step one day at a time.
type civilDay struct {
	year  int
	month time.Month
	day   int
}

func civilOf(t time.Time, loc *time.Location) civilDay {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return civilDay{y, m, d}
}

func (c civilDay) addDays(n int) civilDay {
	y, m, d := time.Date(c.year, c.month, c.day+n, 12, 0, 0, 0, time.UTC).Date()
	return civilDay{y, m, d}
}

func (c civilDay) in(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(c.year, c.month, c.day, 0, 0, 0, 0, loc)
}

// Summarize computes statistics with calendar days evaluated in loc.
func Summarize(entries []*models.DiaryEntry, loc *time.Location, now time.Time) Summary {
	s := Summary{Total: len(entries)}

	days := make(map[civilDay]int)
	moods := make(map[string]int)
	for _, e := range entries {
		days[civilOf(e.CreatedAt, loc)]++
		moods[e.Mood]++
	}
	s.DaysWritten = len(days)

	for _, mood := range models.ValidMoods {
		s.Moods = append(s.Moods, MoodCount{Mood: mood, Count: moods[mood]})
	}
	if n := moods[""]; n > 0 {
		s.Moods = append(s.Moods, MoodCount{Mood: "", Count: n})
	}

	today := civilOf(now, loc)
	for i := RecentDays - 1; i >= 0; i-- {
		d := today.addDays(-i)
		s.Recent = append(s.Recent, DayCount{Day: d.in(loc), Count: days[d]})
	}

	// A streak still counts if the last entry was yesterday.
	start := today
	if days[start] == 0 {
		start = start.addDays(-1)
	}
	for d := start; days[d] > 0; d = d.addDays(-1) {
		s.CurrentStreak++
	}

	for d := range days {
		if days[d.addDays(-1)] > 0 {
			continue
		}
		run := 0
		for cur := d; days[cur] > 0; cur = cur.addDays(1) {
			run++
		}
		if run > s.LongestStreak {
			s.LongestStreak = run
		}
	}

	return s
}
