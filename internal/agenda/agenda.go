// Package agenda provides the stateless read views derived from the event
// store: a day's agenda, the bounded upcoming list, and per-day summaries
// for month-grid cells.
package agenda

import (
	"sort"
	"time"

	"github.com/vendrom/calendar-backend/internal/event"
	"github.com/vendrom/calendar-backend/internal/timeutil"
)

// Default bounds observed by the presentation layer.
const (
	// DefaultUpcomingLimit caps the sidebar's upcoming list.
	DefaultUpcomingLimit = 8
	// DefaultCellVisible caps the events shown inside one month-grid cell.
	DefaultCellVisible = 2
)

// Queries answers read-only agenda questions against the event store.
type Queries struct {
	store *event.Store

	// Now is injectable for tests.
	Now func() time.Time
}

// NewQueries creates an agenda query layer over the given store.
func NewQueries(store *event.Store) *Queries {
	return &Queries{store: store, Now: time.Now}
}

// DayAgenda returns every event on the given local day, ascending by start
// time.
func (q *Queries) DayAgenda(date time.Time) []event.CalendarEvent {
	events := q.store.ByDay(date)
	sortByStart(events)
	return events
}

// Upcoming returns events starting at or after now, ascending by start
// time, truncated to limit. A non-positive limit applies the default.
func (q *Queries) Upcoming(limit int) []event.CalendarEvent {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	now := q.Now()

	var upcoming []event.CalendarEvent
	for _, e := range q.store.All() {
		if !e.Start.Before(now) {
			upcoming = append(upcoming, e)
		}
	}
	sortByStart(upcoming)

	if len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// CellSummary is the capped per-day view rendered inside a month-grid
// cell: the first maxVisible events plus the count of hidden ones.
type CellSummary struct {
	Date     string                `json:"date"`
	Visible  []event.CalendarEvent `json:"visible"`
	Overflow int                   `json:"overflow"`
}

// MonthCellSummary returns the cell summary for the given day. Events are
// sorted ascending by start so cells render deterministically. A
// non-positive maxVisible applies the default.
func (q *Queries) MonthCellSummary(date time.Time, maxVisible int) CellSummary {
	if maxVisible <= 0 {
		maxVisible = DefaultCellVisible
	}

	events := q.DayAgenda(date)
	summary := CellSummary{Date: timeutil.DateKey(date), Visible: events}
	if len(events) > maxVisible {
		summary.Visible = events[:maxVisible]
		summary.Overflow = len(events) - maxVisible
	}
	return summary
}

// sortByStart orders events ascending by start time. The sort is stable so
// same-instant events keep their collection order.
func sortByStart(events []event.CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
}
