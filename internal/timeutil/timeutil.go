// Package timeutil provides the date-key and display-label helpers shared by
// the calendar engine. All functions are pure and use local-calendar
// semantics: two instants on the same local day map to the same key.
package timeutil

import "time"

// DateKey returns the per-day index key for a point in time, in
// YYYY-MM-DD form.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Clock returns a 12-hour clock label with AM/PM suffix and no leading
// zero on the hour, e.g. "9:30 AM".
func Clock(t time.Time) string {
	return t.Format("3:04 PM")
}

// Label renders the display label stored on an event at write time.
// All-day events render as "All day"; a start without an end renders as a
// single clock label; a start and end render as "<start> - <end>".
func Label(start time.Time, end *time.Time, allDay bool) string {
	if allDay {
		return "All day"
	}
	if end == nil {
		return Clock(start)
	}
	return Clock(start) + " - " + Clock(*end)
}

// Midnight truncates a point in time to the start of its local day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday beginning the ISO week containing t,
// truncated to midnight.
func StartOfWeek(t time.Time) time.Time {
	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	offset := (int(t.Weekday()) + 6) % 7
	return Midnight(t).AddDate(0, 0, -offset)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampedDate builds a date from components, clamping the day to the last
// valid day of the target month instead of rolling into the next month.
func ClampedDate(year int, month time.Month, day int, ref time.Time) time.Time {
	if max := DaysIn(year, month); day > max {
		day = max
	}
	return time.Date(year, month, day,
		ref.Hour(), ref.Minute(), ref.Second(), ref.Nanosecond(), ref.Location())
}

// SameDay reports whether two points in time fall on the same local
// calendar day.
func SameDay(a, b time.Time) bool {
	return DateKey(a) == DateKey(b)
}
