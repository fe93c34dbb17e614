package event

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendrom/calendar-backend/internal/notice"
)

// fakeSelector records the days the service focuses.
type fakeSelector struct {
	selected []time.Time
}

func (f *fakeSelector) SelectDate(d time.Time) {
	f.selected = append(f.selected, d)
}

// fakePublisher records mutation broadcasts.
type fakePublisher struct {
	created []CalendarEvent
	updated []CalendarEvent
	adopted []CalendarEvent
	notices []notice.Notice
}

func (f *fakePublisher) EventCreated(e CalendarEvent) { f.created = append(f.created, e) }
func (f *fakePublisher) EventUpdated(e CalendarEvent) { f.updated = append(f.updated, e) }
func (f *fakePublisher) EventAdopted(e CalendarEvent, _ []Conflict) {
	f.adopted = append(f.adopted, e)
}
func (f *fakePublisher) NoticePosted(n notice.Notice) { f.notices = append(f.notices, n) }

func newTestService() (*Service, *Store, *notice.Mailbox, *fakeSelector, *fakePublisher) {
	store := NewStore()
	mailbox := notice.NewMailbox()
	selector := &fakeSelector{}
	pub := &fakePublisher{}
	svc := NewService(store, NewDetector(store), mailbox, selector, pub)

	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return svc, store, mailbox, selector, pub
}

func TestCreateMeeting(t *testing.T) {
	svc, store, _, _, pub := newTestService()

	end := time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)
	e := svc.Create(Draft{
		Title: "Sync",
		Type:  TypeMeeting,
		Start: time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local),
		End:   &end,
	})

	assert.Equal(t, "9:00 AM - 9:30 AM", e.TimeLabel)
	assert.Equal(t, SourceVendrom, e.Source)

	meeting, ok := e.Meeting()
	require.True(t, ok)
	assert.Equal(t, ModeVirtual, meeting.Mode, "meetings default to virtual")

	assert.Equal(t, 1, store.Len())
	require.Len(t, pub.created, 1)
	assert.Equal(t, e.ID, pub.created[0].ID)
}

func TestCreateAllDayDeadline(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	e := svc.Create(Draft{
		Title:  "Deadline",
		Type:   TypeDeadline,
		Start:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local),
		AllDay: true,
	})

	assert.Equal(t, "All day", e.TimeLabel)
	_, isMeeting := e.Meeting()
	assert.False(t, isMeeting)
}

func TestCreateStripsMeetingFieldsFromNonMeetings(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	e := svc.Create(Draft{
		Title:       "Dinner",
		Type:        TypeBooking,
		Start:       dayAt(10, 19),
		Location:    "Trattoria",
		MeetingMode: ModeVirtual,
		MeetingLink: "https://meet.example.com/nope",
	})

	_, isMeeting := e.Meeting()
	assert.False(t, isMeeting)
	assert.Equal(t, "Trattoria", e.Location())
}

func TestCreateDropsLinkForPhysicalMeetings(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	e := svc.Create(Draft{
		Title:       "On-site",
		Type:        TypeMeeting,
		Start:       dayAt(10, 9),
		MeetingMode: ModePhysical,
		MeetingLink: "https://meet.example.com/ignored",
	})

	meeting, ok := e.Meeting()
	require.True(t, ok)
	assert.Equal(t, ModePhysical, meeting.Mode)
	assert.Empty(t, meeting.Link)
}

func TestEditMergesOverPrior(t *testing.T) {
	svc, _, _, _, pub := newTestService()

	created := svc.Create(Draft{
		Title:       "Kickoff",
		Description: "Initial scope",
		Type:        TypeMeeting,
		Start:       dayAt(10, 9),
		MeetingLink: "https://meet.example.com/kickoff",
	})

	title := "Kickoff v2"
	updated, ok := svc.Edit(created.ID, Patch{Title: &title})
	require.True(t, ok)

	assert.Equal(t, "Kickoff v2", updated.Title)
	assert.Equal(t, "Initial scope", updated.Description, "untouched fields survive")
	meeting, _ := updated.Meeting()
	assert.Equal(t, "https://meet.example.com/kickoff", meeting.Link)
	require.Len(t, pub.updated, 1)
}

func TestEditTypeChangeRebuildsDetails(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	created := svc.Create(Draft{
		Title:       "Was a meeting",
		Type:        TypeMeeting,
		Start:       dayAt(10, 9),
		MeetingLink: "https://meet.example.com/x",
	})

	typ := TypeEvent
	loc := "Cafe"
	updated, ok := svc.Edit(created.ID, Patch{Type: &typ, Location: &loc})
	require.True(t, ok)

	_, isMeeting := updated.Meeting()
	assert.False(t, isMeeting)
	assert.Equal(t, "Cafe", updated.Location())
}

func TestEditRecomputesTimeLabel(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	created := svc.Create(Draft{Title: "Call", Type: TypeEvent, Start: dayAt(10, 9)})
	assert.Equal(t, "9:00 AM", created.TimeLabel)

	start := dayAt(10, 14)
	end := start.Add(45 * time.Minute)
	updated, ok := svc.Edit(created.ID, Patch{Start: &start, End: &end})
	require.True(t, ok)
	assert.Equal(t, "2:00 PM - 2:45 PM", updated.TimeLabel)
}

func TestEditUnknownID(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	_, ok := svc.Edit("nope", Patch{})
	assert.False(t, ok)
}

func TestAdoptClonesExternalEvent(t *testing.T) {
	svc, store, mailbox, selector, pub := newTestService()

	external := stored("ext-1", dayAt(10, 9))
	external.Source = "google"

	adopted, conflicts, n := svc.Adopt(external)

	assert.NotEqual(t, "ext-1", adopted.ID, "clone gets a fresh ID")
	assert.Equal(t, SourceVendrom, adopted.Source)
	assert.Empty(t, conflicts)
	assert.Equal(t, notice.ToneSuccess, n.Tone)
	assert.Equal(t, 1, store.Len())

	require.Len(t, selector.selected, 1)
	assert.Equal(t, external.Start, selector.selected[0])

	current, ok := mailbox.Current()
	require.True(t, ok)
	assert.Equal(t, n, current)
	require.Len(t, pub.adopted, 1)
}

func TestAdoptAlreadyOwnedIsNoOp(t *testing.T) {
	svc, store, _, selector, _ := newTestService()

	owned := svc.Create(Draft{Title: "Mine", Type: TypeEvent, Start: dayAt(10, 9)})
	require.Equal(t, 1, store.Len())

	same, conflicts, n := svc.Adopt(owned)

	assert.Equal(t, owned.ID, same.ID)
	assert.Empty(t, conflicts)
	assert.Equal(t, notice.ToneInfo, n.Tone)
	assert.Equal(t, 1, store.Len(), "no duplicate inserted")
	assert.Len(t, selector.selected, 1, "day still re-selected")
}

func TestAdoptWarnsOnConflict(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	svc.Create(Draft{
		Title: "Existing",
		Type:  TypeEvent,
		Start: dayAt(10, 9),
		End:   timePtr(dayAt(10, 10)),
	})

	external := CalendarEvent{
		ID:     "ext-2",
		Title:  "Overlapping",
		Start:  dayAt(10, 9).Add(30 * time.Minute),
		End:    timePtr(dayAt(10, 10).Add(30 * time.Minute)),
		Type:   TypeEvent,
		Source: "google",
	}

	_, conflicts, n := svc.Adopt(external)

	require.Len(t, conflicts, 1)
	assert.Equal(t, notice.ToneWarning, n.Tone)
	assert.Contains(t, n.Message, "1 scheduling conflict")
}

func TestAdoptDerivesMissingTimeLabel(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	external := CalendarEvent{
		ID:     "ext-3",
		Title:  "No label",
		Start:  dayAt(10, 9),
		Type:   TypeEvent,
		Source: "outlook",
	}

	adopted, _, _ := svc.Adopt(external)
	assert.Equal(t, "9:00 AM", adopted.TimeLabel)
}

func timePtr(t time.Time) *time.Time {
	return &t
}
