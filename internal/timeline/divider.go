// ABOUTME: Date divider policy for the diary timeline.
// ABOUTME: Decides whether a calendar-day separator precedes a list item.
package timeline

import "time"

// ShowDateDivider reports whether a date divider should render before the
// item at index. The first item always gets one. A zero prev is treated as
// absent. Otherwise the divider shows when prev and cur fall on different
// calendar days in loc (UTC when loc is nil).
func ShowDateDivider(index int, prev, cur time.Time, loc *time.Location) bool {
	if index == 0 || prev.IsZero() {
		return true
	}
	return !SameDay(prev, cur, loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := Day(a, loc).Date()
	by, bm, bd := Day(b, loc).Date()
	return ay == by && am == bm && ad == bd
}

// Day returns midnight of t's calendar day in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
