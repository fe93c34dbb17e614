// Package handlers provides HTTP request handlers for the API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gorilla/mux"

	"github.com/vendrom/calendar-backend/internal/api/middleware"
	"github.com/vendrom/calendar-backend/internal/event"
)

// Layout strings for the date and clock fields the frontend submits.
const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

var eventTypes = []any{"meeting", "deadline", "event", "booking", "reminder"}

// CreateEventRequest is the request body for creating an event. The
// mutation service trusts its callers on required fields, so this request
// is the gate: it refuses to resolve into a draft until title and date are
// present and well-formed.
type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Type        string `json:"type"`
	MeetingMode string `json:"meeting_mode"`
	MeetingLink string `json:"meeting_link"`
	Link        string `json:"link"`
}

// Validate validates the create request.
func (r CreateEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Date, validation.Required, validation.Date(dateLayout)),
		validation.Field(&r.StartTime, validation.Date(clockLayout)),
		validation.Field(&r.EndTime, validation.Date(clockLayout),
			validation.When(r.StartTime == "", validation.Empty.Error("end time requires a start time"))),
		validation.Field(&r.Type, validation.In(eventTypes...)),
		validation.Field(&r.MeetingMode, validation.In("virtual", "physical")),
	)
}

// Draft resolves the request into a mutation-service draft. Callers must
// Validate first.
func (r CreateEventRequest) Draft() (event.Draft, error) {
	typ := event.Type(r.Type)
	if typ == "" {
		typ = event.TypeEvent
	}

	day, err := time.ParseInLocation(dateLayout, r.Date, time.Local)
	if err != nil {
		return event.Draft{}, err
	}

	start, allDay := day, true
	if r.StartTime != "" {
		clock, err := time.Parse(clockLayout, r.StartTime)
		if err != nil {
			return event.Draft{}, err
		}
		start = day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
		allDay = false
	}

	var end *time.Time
	if !allDay && r.EndTime != "" {
		clock, err := time.Parse(clockLayout, r.EndTime)
		if err != nil {
			return event.Draft{}, err
		}
		t := day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
		end = &t
	}

	return event.Draft{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Start:       start,
		End:         end,
		AllDay:      allDay,
		Type:        typ,
		MeetingMode: event.MeetingMode(r.MeetingMode),
		MeetingLink: r.MeetingLink,
		Link:        r.Link,
	}, nil
}

// UpdateEventRequest is the request body for editing an event. Absent
// fields preserve the existing record; the edit is a merge.
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Date        *string `json:"date"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Type        *string `json:"type"`
	MeetingMode *string `json:"meeting_mode"`
	MeetingLink *string `json:"meeting_link"`
	Link        *string `json:"link"`
}

// Validate validates the update request.
func (r UpdateEventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty),
		validation.Field(&r.Date, validation.NilOrNotEmpty, validation.Date(dateLayout)),
		validation.Field(&r.StartTime, validation.Date(clockLayout)),
		validation.Field(&r.EndTime, validation.Date(clockLayout)),
		validation.Field(&r.Type, validation.In(eventTypes...)),
		validation.Field(&r.MeetingMode, validation.In("virtual", "physical")),
	)
}

// Patch resolves the request into a merge patch, using the prior record to
// combine partial date/time edits into full instants. An empty start_time
// turns the event all-day; an empty end_time clears the end.
func (r UpdateEventRequest) Patch(prior event.CalendarEvent) (event.Patch, error) {
	p := event.Patch{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		MeetingLink: r.MeetingLink,
		Link:        r.Link,
	}

	if r.Type != nil {
		typ := event.Type(*r.Type)
		p.Type = &typ
	}
	if r.MeetingMode != nil {
		mode := event.MeetingMode(*r.MeetingMode)
		p.MeetingMode = &mode
	}

	if r.Date == nil && r.StartTime == nil && r.EndTime == nil {
		return p, nil
	}

	day := time.Date(prior.Start.Year(), prior.Start.Month(), prior.Start.Day(), 0, 0, 0, 0, prior.Start.Location())
	if r.Date != nil {
		parsed, err := time.ParseInLocation(dateLayout, *r.Date, time.Local)
		if err != nil {
			return event.Patch{}, err
		}
		day = parsed
	}

	allDay := prior.AllDay
	clockOffset := prior.Start.Sub(time.Date(prior.Start.Year(), prior.Start.Month(), prior.Start.Day(), 0, 0, 0, 0, prior.Start.Location()))
	if r.StartTime != nil {
		if *r.StartTime == "" {
			allDay = true
			clockOffset = 0
		} else {
			clock, err := time.Parse(clockLayout, *r.StartTime)
			if err != nil {
				return event.Patch{}, err
			}
			allDay = false
			clockOffset = time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute
		}
	}
	if allDay {
		clockOffset = 0
	}

	start := day.Add(clockOffset)
	p.Start = &start
	p.AllDay = &allDay

	switch {
	case allDay:
		p.ClearEnd = true
	case r.EndTime != nil && *r.EndTime == "":
		p.ClearEnd = true
	case r.EndTime != nil:
		clock, err := time.Parse(clockLayout, *r.EndTime)
		if err != nil {
			return event.Patch{}, err
		}
		end := day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
		p.End = &end
	case prior.End != nil:
		// Keep the prior end's clock time on the (possibly new) day.
		prevDay := time.Date(prior.End.Year(), prior.End.Month(), prior.End.Day(), 0, 0, 0, 0, prior.End.Location())
		end := day.Add(prior.End.Sub(prevDay))
		p.End = &end
	}

	return p, nil
}

// ListEvents returns the full collection, newest-first.
func ListEvents(store *event.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.All())
	}
}

// CreateEvent creates an owned event from a validated request body.
func CreateEvent(svc *event.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			middleware.WriteErrorWithDetails(w, http.StatusBadRequest, middleware.ErrValidation, "Invalid event", err)
			return
		}

		draft, err := req.Draft()
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Invalid date or time")
			return
		}

		writeJSON(w, http.StatusCreated, svc.Create(draft))
	}
}

// UpdateEvent merges a validated patch over an existing event.
func UpdateEvent(store *event.Store, svc *event.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		prior, ok := store.Get(id)
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Event not found")
			return
		}

		var req UpdateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			middleware.WriteErrorWithDetails(w, http.StatusBadRequest, middleware.ErrValidation, "Invalid event", err)
			return
		}

		patch, err := req.Patch(prior)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Invalid date or time")
			return
		}

		updated, ok := svc.Edit(id, patch)
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Event not found")
			return
		}

		writeJSON(w, http.StatusOK, updated)
	}
}

// AdoptResponse is the response body for adopting an external event.
type AdoptResponse struct {
	Event     event.CalendarEvent `json:"event"`
	Conflicts []event.Conflict    `json:"conflicts"`
	Tone      string              `json:"tone"`
	Message   string              `json:"message"`
}

// AdoptEvent clones an externally surfaced event into the user's own
// calendar. The request body is the external event in its wire shape.
func AdoptEvent(svc *event.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var external event.CalendarEvent
		if err := json.NewDecoder(r.Body).Decode(&external); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrBadRequest, "Invalid request body")
			return
		}
		if external.Title == "" || external.Start.IsZero() {
			middleware.WriteError(w, http.StatusBadRequest, middleware.ErrValidation, "Title and start are required")
			return
		}

		adopted, conflicts, n := svc.Adopt(external)
		if conflicts == nil {
			conflicts = []event.Conflict{}
		}

		writeJSON(w, http.StatusOK, AdoptResponse{
			Event:     adopted,
			Conflicts: conflicts,
			Tone:      string(n.Tone),
			Message:   n.Message,
		})
	}
}

// EventConflicts probes an existing event for same-day overlaps.
func EventConflicts(store *event.Store, detector *event.Detector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		e, ok := store.Get(id)
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Event not found")
			return
		}

		conflicts := detector.FindConflicts(e)
		if conflicts == nil {
			conflicts = []event.Conflict{}
		}
		writeJSON(w, http.StatusOK, conflicts)
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
