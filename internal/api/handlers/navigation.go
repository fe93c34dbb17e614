package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/vendrom/calendar-backend/internal/api/middleware"
	"github.com/vendrom/calendar-backend/internal/nav"
	"github.com/vendrom/calendar-backend/internal/timeutil"
)

// NavigationResponse is the navigation state plus the derived keys the
// frontend renders from.
type NavigationResponse struct {
	nav.State
	SelectedKey string    `json:"selected_key"`
	WeekStart   time.Time `json:"week_start"`
}

func navigationResponse(ctrl *nav.Controller) NavigationResponse {
	state := ctrl.State()
	return NavigationResponse{
		State:       state,
		SelectedKey: timeutil.DateKey(state.SelectedDate),
		WeekStart:   timeutil.StartOfWeek(state.CurrentDate),
	}
}

// GetNavigation returns the current navigation state.
func GetNavigation(ctrl *nav.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, navigationResponse(ctrl))
	}
}

// NavToday re-anchors the calendar on the present moment.
func NavToday(ctrl *nav.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl.Today()
		writeJSON(w, http.StatusOK, navigationResponse(ctrl))
	}
}

// StepRequest is the request body for stepping the anchor.
type StepRequest struct {
	Direction string `json:"direction"`
}

// Validate validates the step request.
func (r StepRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Direction, validation.Required, validation.In("prev", "next")),
	)
}

// NavStep advances the anchor by one unit of the active view.
func NavStep(ctrl *nav.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StepRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			middleware.WriteErrorWithDetails(w, http.StatusBadRequest, middleware.ErrValidation, "Invalid step", err)
			return
		}

		ctrl.Step(nav.Direction(req.Direction))
		writeJSON(w, http.StatusOK, navigationResponse(ctrl))
	}
}

// ViewRequest is the request body for switching the active view.
type ViewRequest struct {
	View string `json:"view"`
}

// Validate validates the view request.
func (r ViewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.View, validation.Required, validation.In("day", "week", "month", "year")),
	)
}

// NavSetView switches the active view without moving the anchor.
func NavSetView(ctrl *nav.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ViewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			middleware.WriteErrorWithDetails(w, http.StatusBadRequest, middleware.ErrValidation, "Invalid view", err)
			return
		}

		ctrl.SetView(nav.View(req.View))
		writeJSON(w, http.StatusOK, navigationResponse(ctrl))
	}
}

// SelectRequest is the request body for the selection verbs. Exactly one
// of Date, Month, or Year is used per route.
type SelectRequest struct {
	Date  string `json:"date"`
	Month int    `json:"month"`
	Year  int    `json:"year"`
}

// NavSelectDate selects a day, anchoring on it and drilling into day view
// from month and week views.
func NavSelectDate(ctrl *nav.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}

		date, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Invalid date")
			return
		}

		ctrl.SelectDate(date)
		writeJSON(w, http.StatusOK, navigationResponse(ctrl))
	}
}

// NavSelectMonth overwrites the anchor's month, clamping the day-of-month.
func NavSelectMonth(ctrl *nav.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if req.Month < 1 || req.Month > 12 {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Month must be between 1 and 12")
			return
		}

		ctrl.SelectMonth(time.Month(req.Month))
		writeJSON(w, http.StatusOK, navigationResponse(ctrl))
	}
}

// NavSelectYear overwrites the anchor's year, clamping the day-of-month.
func NavSelectYear(ctrl *nav.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if req.Year < 1 {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Year is required")
			return
		}

		ctrl.SelectYear(req.Year)
		writeJSON(w, http.StatusOK, navigationResponse(ctrl))
	}
}

// NavOpenMonth drills from year view into month view on the given month.
func NavOpenMonth(ctrl *nav.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if req.Month < 1 || req.Month > 12 {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Month must be between 1 and 12")
			return
		}

		ctrl.OpenMonth(time.Month(req.Month))
		writeJSON(w, http.StatusOK, navigationResponse(ctrl))
	}
}
