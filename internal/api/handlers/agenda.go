package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vendrom/calendar-backend/internal/agenda"
	"github.com/vendrom/calendar-backend/internal/api/middleware"
	"github.com/vendrom/calendar-backend/internal/event"
	"github.com/vendrom/calendar-backend/internal/nav"
)

// DayAgenda returns the agenda for the ?date= day, falling back to the
// navigation controller's selected date.
func DayAgenda(queries *agenda.Queries, ctrl *nav.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := ctrl.State().SelectedDate
		if raw := r.URL.Query().Get("date"); raw != "" {
			parsed, err := time.ParseInLocation(dateLayout, raw, time.Local)
			if err != nil {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Invalid date")
				return
			}
			date = parsed
		}

		events := queries.DayAgenda(date)
		if events == nil {
			events = []event.CalendarEvent{}
		}
		writeJSON(w, http.StatusOK, events)
	}
}

// Upcoming returns the bounded upcoming list; ?limit= overrides the
// default bound.
func Upcoming(queries *agenda.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Limit must be a positive integer")
				return
			}
			limit = parsed
		}

		events := queries.Upcoming(limit)
		if events == nil {
			events = []event.CalendarEvent{}
		}
		writeJSON(w, http.StatusOK, events)
	}
}

// MonthCell returns the capped per-day summary for one month-grid cell.
// ?date= selects the day; ?max= overrides the visible cap.
func MonthCell(queries *agenda.Queries) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("date")
		date, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Invalid date")
			return
		}

		maxVisible := 0
		if rawMax := r.URL.Query().Get("max"); rawMax != "" {
			parsed, err := strconv.Atoi(rawMax)
			if err != nil || parsed < 1 {
				middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Max must be a positive integer")
				return
			}
			maxVisible = parsed
		}

		summary := queries.MonthCellSummary(date, maxVisible)
		if summary.Visible == nil {
			summary.Visible = []event.CalendarEvent{}
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
