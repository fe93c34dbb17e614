package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKey(t *testing.T) {
	morning := time.Date(2026, 3, 10, 0, 30, 0, 0, time.Local)
	evening := time.Date(2026, 3, 10, 23, 45, 0, 0, time.Local)

	assert.Equal(t, "2026-03-10", DateKey(morning))
	assert.Equal(t, DateKey(morning), DateKey(evening), "same local day must share a key")
	assert.NotEqual(t, DateKey(morning), DateKey(morning.AddDate(0, 0, 1)))
}

func TestClock(t *testing.T) {
	assert.Equal(t, "9:30 AM", Clock(time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, "12:00 PM", Clock(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "12:05 AM", Clock(time.Date(2026, 3, 10, 0, 5, 0, 0, time.UTC)))
	assert.Equal(t, "11:59 PM", Clock(time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)))
}

func TestLabel(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, "All day", Label(start, nil, true))
	assert.Equal(t, "9:00 AM", Label(start, nil, false))
	assert.Equal(t, "9:00 AM - 9:30 AM", Label(start, &end, false))
}

func TestStartOfWeek(t *testing.T) {
	// 2026-03-11 is a Wednesday; its ISO week starts Monday 2026-03-09.
	wed := time.Date(2026, 3, 11, 15, 4, 0, 0, time.Local)
	monday := StartOfWeek(wed)

	assert.Equal(t, time.Monday, monday.Weekday())
	assert.Equal(t, "2026-03-09", DateKey(monday))
	assert.Equal(t, 0, monday.Hour())

	// Sunday belongs to the week that started six days earlier.
	sun := time.Date(2026, 3, 15, 8, 0, 0, 0, time.Local)
	assert.Equal(t, "2026-03-09", DateKey(StartOfWeek(sun)))

	// A Monday is its own week start.
	assert.Equal(t, "2026-03-09", DateKey(StartOfWeek(monday)))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(2026, time.January))
	assert.Equal(t, 28, DaysIn(2026, time.February))
	assert.Equal(t, 29, DaysIn(2028, time.February))
	assert.Equal(t, 30, DaysIn(2026, time.April))
	assert.Equal(t, 31, DaysIn(2026, time.December))
}

func TestClampedDate(t *testing.T) {
	ref := time.Date(2026, 1, 31, 10, 30, 0, 0, time.Local)

	clamped := ClampedDate(2026, time.February, 31, ref)
	assert.Equal(t, time.February, clamped.Month())
	assert.Equal(t, 28, clamped.Day())
	assert.Equal(t, 10, clamped.Hour(), "clock time carries over from the reference")

	// Leap year keeps the 29th.
	assert.Equal(t, 29, ClampedDate(2028, time.February, 31, ref).Day())

	// Valid days pass through untouched.
	assert.Equal(t, 15, ClampedDate(2026, time.February, 15, ref).Day())
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 3, 10, 1, 0, 0, 0, time.Local)
	b := time.Date(2026, 3, 10, 22, 0, 0, 0, time.Local)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, b.AddDate(0, 0, 1)))
}
