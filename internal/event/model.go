// Package event contains the calendar event domain model, the owned event
// store with its derived per-day index, the conflict detector, and the
// mutation service.
package event

import (
	"encoding/json"
	"time"

	"github.com/vendrom/calendar-backend/internal/timeutil"
)

// Type classifies a calendar event.
type Type string

// Event type constants.
const (
	TypeMeeting  Type = "meeting"
	TypeDeadline Type = "deadline"
	TypeEvent    Type = "event"
	TypeBooking  Type = "booking"
	TypeReminder Type = "reminder"
)

// MeetingMode describes how a meeting is held.
type MeetingMode string

// Meeting mode constants.
const (
	ModeVirtual  MeetingMode = "virtual"
	ModePhysical MeetingMode = "physical"
)

// SourceVendrom tags events owned by the hosting application. Any other
// source value marks an event as merely surfaced from an external provider.
const SourceVendrom = "vendrom"

// Details is the type-dependent portion of an event. Modeling it as a
// variant makes an invalid combination (a deadline with a meeting link,
// a physical meeting with a meeting link) unrepresentable.
type Details interface {
	isDetails()
}

// MeetingDetails holds the fields valid only for meeting-type events.
// Link is retained only when Mode is virtual.
type MeetingDetails struct {
	Mode MeetingMode
	Link string
}

// PlainDetails holds the fields valid for non-meeting events.
type PlainDetails struct {
	Location string
}

func (MeetingDetails) isDetails() {}
func (PlainDetails) isDetails()   {}

// CalendarEvent is a single entry in the calendar.
type CalendarEvent struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         *time.Time
	AllDay      bool
	TimeLabel   string
	Type        Type
	Source      string
	Link        string
	Details     Details
}

// Owned reports whether the event belongs to the user's own calendar, as
// opposed to being surfaced from an external provider.
func (e CalendarEvent) Owned() bool {
	return e.Source == SourceVendrom
}

// Location returns the event's location when it carries plain details.
func (e CalendarEvent) Location() string {
	if d, ok := e.Details.(PlainDetails); ok {
		return d.Location
	}
	return ""
}

// Meeting returns the meeting details and whether the event has any.
func (e CalendarEvent) Meeting() (MeetingDetails, bool) {
	d, ok := e.Details.(MeetingDetails)
	return d, ok
}

// DateKey returns the per-day index key for the event's start.
func (e CalendarEvent) DateKey() string {
	return timeutil.DateKey(e.Start)
}

// eventJSON is the flat wire shape of an event. The tagged Details variant
// is flattened into the conditional meeting_mode/meeting_link/location
// fields the frontend consumes.
type eventJSON struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Location    string      `json:"location,omitempty"`
	Start       time.Time   `json:"start"`
	End         *time.Time  `json:"end,omitempty"`
	AllDay      bool        `json:"all_day"`
	TimeLabel   string      `json:"time_label"`
	Type        Type        `json:"type"`
	Source      string      `json:"source"`
	Link        string      `json:"link,omitempty"`
	MeetingMode MeetingMode `json:"meeting_mode,omitempty"`
	MeetingLink string      `json:"meeting_link,omitempty"`
}

// MarshalJSON flattens the details variant into the wire shape.
func (e CalendarEvent) MarshalJSON() ([]byte, error) {
	out := eventJSON{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Start:       e.Start,
		End:         e.End,
		AllDay:      e.AllDay,
		TimeLabel:   e.TimeLabel,
		Type:        e.Type,
		Source:      e.Source,
		Link:        e.Link,
	}

	switch d := e.Details.(type) {
	case MeetingDetails:
		out.MeetingMode = d.Mode
		out.MeetingLink = d.Link
	case PlainDetails:
		out.Location = d.Location
	}

	return json.Marshal(out)
}

// UnmarshalJSON parses the wire shape and rebuilds the details variant,
// applying the field-dependence rules so a decoded event can never carry
// an invalid combination.
func (e *CalendarEvent) UnmarshalJSON(data []byte) error {
	var in eventJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*e = CalendarEvent{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Start:       in.Start,
		End:         in.End,
		AllDay:      in.AllDay,
		TimeLabel:   in.TimeLabel,
		Type:        in.Type,
		Source:      in.Source,
		Link:        in.Link,
		Details:     NormalizeDetails(in.Type, in.MeetingMode, in.MeetingLink, in.Location),
	}
	return nil
}

// NormalizeDetails builds the details variant for an event of the given
// type. Meetings default to virtual mode and keep the meeting link only
// while virtual; every other type carries only a location.
func NormalizeDetails(typ Type, mode MeetingMode, meetingLink, location string) Details {
	if typ != TypeMeeting {
		return PlainDetails{Location: location}
	}
	if mode == "" {
		mode = ModeVirtual
	}
	if mode != ModeVirtual {
		meetingLink = ""
	}
	return MeetingDetails{Mode: mode, Link: meetingLink}
}
