package event

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vendrom/calendar-backend/internal/notice"
	"github.com/vendrom/calendar-backend/internal/timeutil"
)

// DaySelector is the navigation seam used by mutations that focus the
// calendar on a mutated event's day.
type DaySelector interface {
	SelectDate(time.Time)
}

// Publisher receives mutation outcomes for live push to connected clients.
type Publisher interface {
	EventCreated(CalendarEvent)
	EventUpdated(CalendarEvent)
	EventAdopted(CalendarEvent, []Conflict)
	NoticePosted(notice.Notice)
}

// Draft is the input to Create. Title and Start are required; the service
// trusts callers to gate those preconditions (the HTTP layer validates
// request bodies before invoking it).
type Draft struct {
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         *time.Time
	AllDay      bool
	Type        Type
	MeetingMode MeetingMode
	MeetingLink string
	Link        string
}

// Patch is the input to Edit. Nil fields preserve the prior record's
// values; Edit is a merge, not a replace.
type Patch struct {
	Title       *string
	Description *string
	Location    *string
	Start       *time.Time
	End         *time.Time
	ClearEnd    bool
	AllDay      *bool
	Type        *Type
	MeetingMode *MeetingMode
	MeetingLink *string
	Link        *string
}

// Service implements the calendar's mutation operations: create, edit, and
// adopting an externally surfaced event into the user's own calendar.
type Service struct {
	store    *Store
	detector *Detector
	notices  *notice.Mailbox
	selector DaySelector
	pub      Publisher

	newID func() string
}

// NewService creates a mutation service. selector and pub may be nil when
// the caller has no navigation state or live clients to update.
func NewService(store *Store, detector *Detector, notices *notice.Mailbox, selector DaySelector, pub Publisher) *Service {
	return &Service{
		store:    store,
		detector: detector,
		notices:  notices,
		selector: selector,
		pub:      pub,
		newID:    uuid.NewString,
	}
}

// Create builds an owned event from the draft, derives its display label,
// and inserts it at the head of the collection.
func (s *Service) Create(d Draft) CalendarEvent {
	e := CalendarEvent{
		ID:          s.newID(),
		Title:       d.Title,
		Description: d.Description,
		Start:       d.Start,
		End:         d.End,
		AllDay:      d.AllDay,
		TimeLabel:   timeutil.Label(d.Start, d.End, d.AllDay),
		Type:        d.Type,
		Source:      SourceVendrom,
		Link:        d.Link,
		Details:     NormalizeDetails(d.Type, d.MeetingMode, d.MeetingLink, d.Location),
	}

	s.store.Upsert(e)
	if s.pub != nil {
		s.pub.EventCreated(e)
	}
	return e
}

// Edit merges the patch over the existing record, re-applies the
// field-dependence rules, recomputes the display label, and replaces the
// record in place. It reports false when no event has the given ID.
func (s *Service) Edit(id string, p Patch) (CalendarEvent, bool) {
	prior, ok := s.store.Get(id)
	if !ok {
		return CalendarEvent{}, false
	}

	e := applyPatch(prior, p)
	e.TimeLabel = timeutil.Label(e.Start, e.End, e.AllDay)

	s.store.Upsert(e)
	if s.pub != nil {
		s.pub.EventUpdated(e)
	}
	return e, true
}

// Adopt clones an externally surfaced event into the user's own calendar,
// reports any scheduling conflicts, focuses the event's day, and posts a
// notice. Adopting an already-owned event inserts nothing and posts an
// info notice.
func (s *Service) Adopt(external CalendarEvent) (CalendarEvent, []Conflict, notice.Notice) {
	if external.Owned() {
		n := notice.Notice{Tone: notice.ToneInfo, Message: fmt.Sprintf("%q is already on your calendar", external.Title)}
		s.selectDay(external.Start)
		s.post(n)
		return external, nil, n
	}

	adopted := external
	adopted.ID = s.newID()
	adopted.Source = SourceVendrom
	if adopted.TimeLabel == "" {
		adopted.TimeLabel = timeutil.Label(adopted.Start, adopted.End, adopted.AllDay)
	}

	s.store.Upsert(adopted)
	conflicts := s.detector.FindConflicts(adopted)
	s.selectDay(adopted.Start)

	n := notice.Notice{Tone: notice.ToneSuccess, Message: fmt.Sprintf("%q added to your calendar", adopted.Title)}
	if len(conflicts) > 0 {
		n = notice.Notice{
			Tone:    notice.ToneWarning,
			Message: fmt.Sprintf("%q added with %d scheduling conflict(s)", adopted.Title, len(conflicts)),
		}
	}
	s.post(n)

	if s.pub != nil {
		s.pub.EventAdopted(adopted, conflicts)
	}
	return adopted, conflicts, n
}

func (s *Service) selectDay(day time.Time) {
	if s.selector != nil {
		s.selector.SelectDate(day)
	}
}

func (s *Service) post(n notice.Notice) {
	if s.notices != nil {
		s.notices.Post(n)
	}
	if s.pub != nil {
		s.pub.NoticePosted(n)
	}
}

// applyPatch overlays the patch's set fields on the prior record and
// rebuilds the details variant from the merged values.
func applyPatch(prior CalendarEvent, p Patch) CalendarEvent {
	e := prior

	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Start != nil {
		e.Start = *p.Start
	}
	if p.End != nil {
		e.End = p.End
	}
	if p.ClearEnd {
		e.End = nil
	}
	if p.AllDay != nil {
		e.AllDay = *p.AllDay
		if e.AllDay {
			e.End = nil
		}
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Link != nil {
		e.Link = *p.Link
	}

	// Merge detail fields against whatever the prior variant carried.
	mode, meetingLink := MeetingMode(""), ""
	if d, ok := prior.Details.(MeetingDetails); ok {
		mode, meetingLink = d.Mode, d.Link
	}
	location := prior.Location()

	if p.MeetingMode != nil {
		mode = *p.MeetingMode
	}
	if p.MeetingLink != nil {
		meetingLink = *p.MeetingLink
	}
	if p.Location != nil {
		location = *p.Location
	}

	e.Details = NormalizeDetails(e.Type, mode, meetingLink, location)
	return e
}
