// Package nav implements the calendar's navigation controller: the active
// view granularity, the anchor date defining the visible range, and the
// selected date whose agenda is shown. State is per session and ephemeral.
package nav

import (
	"sync"
	"time"

	"github.com/vendrom/calendar-backend/internal/timeutil"
)

// View is the active navigation granularity. The views form a flat enum,
// not a hierarchy; every view is reachable from every other.
type View string

// Navigation views.
const (
	ViewDay   View = "day"
	ViewWeek  View = "week"
	ViewMonth View = "month"
	ViewYear  View = "year"
)

// Valid reports whether v names a known view.
func (v View) Valid() bool {
	switch v {
	case ViewDay, ViewWeek, ViewMonth, ViewYear:
		return true
	}
	return false
}

// Direction is a stepping direction.
type Direction string

// Step directions.
const (
	Prev Direction = "prev"
	Next Direction = "next"
)

// State is a snapshot of the controller.
type State struct {
	View         View      `json:"view"`
	CurrentDate  time.Time `json:"current_date"`
	SelectedDate time.Time `json:"selected_date"`
}

// Controller owns the navigation state for one session.
type Controller struct {
	mu       sync.Mutex
	view     View
	current  time.Time
	selected time.Time

	// Now is injectable for tests.
	Now func() time.Time
}

// NewController creates a controller anchored on the current moment, in
// month view.
func NewController() *Controller {
	c := &Controller{view: ViewMonth, Now: time.Now}
	now := c.Now()
	c.current, c.selected = now, now
	return c
}

// State returns a snapshot of the current navigation state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{View: c.view, CurrentDate: c.current, SelectedDate: c.selected}
}

// SetView switches the active view without moving the anchor.
func (c *Controller) SetView(v View) {
	if !v.Valid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = v
}

// Today re-anchors both the current and selected date on the present
// moment, keeping the active view.
func (c *Controller) Today() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.Now()
	c.current, c.selected = now, now
	return State{View: c.view, CurrentDate: c.current, SelectedDate: c.selected}
}

// Step advances the anchor by one unit of the active view: a day, an ISO
// week, a calendar month, or a calendar year. Month and year steps clamp
// the day-of-month rather than rolling into the following month. The
// selected date follows the new anchor.
func (c *Controller) Step(dir Direction) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	delta := 1
	if dir == Prev {
		delta = -1
	}

	switch c.view {
	case ViewDay:
		c.current = c.current.AddDate(0, 0, delta)
	case ViewWeek:
		c.current = c.current.AddDate(0, 0, 7*delta)
	case ViewMonth:
		c.current = addMonths(c.current, delta)
	case ViewYear:
		c.current = timeutil.ClampedDate(c.current.Year()+delta, c.current.Month(), c.current.Day(), c.current)
	}

	c.selected = c.current
	return State{View: c.view, CurrentDate: c.current, SelectedDate: c.selected}
}

// SelectMonth overwrites the anchor's month, clamping the day-of-month to
// the last valid day of the target month. The view does not change.
func (c *Controller) SelectMonth(month time.Month) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = timeutil.ClampedDate(c.current.Year(), month, c.current.Day(), c.current)
	return State{View: c.view, CurrentDate: c.current, SelectedDate: c.selected}
}

// SelectYear overwrites the anchor's year, clamping the day-of-month (a
// Feb 29 anchor moved to a non-leap year lands on Feb 28). The view does
// not change.
func (c *Controller) SelectYear(year int) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = timeutil.ClampedDate(year, c.current.Month(), c.current.Day(), c.current)
	return State{View: c.view, CurrentDate: c.current, SelectedDate: c.selected}
}

// SelectDate selects a day and anchors on it. Clicking a day cell drills
// into day view from month and week views; day view simply re-selects.
func (c *Controller) SelectDate(date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selected = date
	c.current = date
	if c.view == ViewMonth || c.view == ViewWeek {
		c.view = ViewDay
	}
}

// OpenMonth drills from year view into month view on the given month,
// clamping the day-of-month.
func (c *Controller) OpenMonth(month time.Month) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = timeutil.ClampedDate(c.current.Year(), month, c.current.Day(), c.current)
	c.selected = c.current
	c.view = ViewMonth
	return State{View: c.view, CurrentDate: c.current, SelectedDate: c.selected}
}

// WeekStart returns the Monday of the anchor's ISO week, for rendering the
// week view's range.
func (c *Controller) WeekStart() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return timeutil.StartOfWeek(c.current)
}

// addMonths shifts a date by whole calendar months, clamping the
// day-of-month so a Jan 31 anchor stepped forward lands on Feb 28/29
// rather than Mar 2.
func addMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	return timeutil.ClampedDate(first.Year(), first.Month(), t.Day(), t)
}
