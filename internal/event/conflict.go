package event

import (
	"time"

	"github.com/vendrom/calendar-backend/internal/timeutil"
)

// DefaultDuration is the effective length assumed for events without an
// explicit end when comparing time windows.
const DefaultDuration = 60 * time.Minute

// Conflict describes an overlap between a candidate event and an existing
// one, including the overlapping portion of their windows.
type Conflict struct {
	Event        CalendarEvent `json:"event"`
	OverlapStart time.Time     `json:"overlap_start"`
	OverlapEnd   time.Time     `json:"overlap_end"`
}

// EffectiveWindow returns the start/end interval used for conflict
// comparison, substituting the default duration when the event has no
// explicit end.
func EffectiveWindow(e CalendarEvent) (time.Time, time.Time) {
	if e.End != nil {
		return e.Start, *e.End
	}
	return e.Start, e.Start.Add(DefaultDuration)
}

// Detector finds same-day events whose effective windows overlap a
// candidate's.
type Detector struct {
	store *Store
}

// NewDetector creates a conflict detector reading from the given store.
func NewDetector(store *Store) *Detector {
	return &Detector{store: store}
}

// FindConflicts returns every stored event on the candidate's day whose
// effective window overlaps the candidate's, excluding the candidate
// itself. Overlap is strict: events that merely touch at a boundary do not
// conflict.
func (d *Detector) FindConflicts(candidate CalendarEvent) []Conflict {
	candStart, candEnd := EffectiveWindow(candidate)

	var conflicts []Conflict
	for _, other := range d.store.All() {
		if other.ID == candidate.ID {
			continue
		}
		if !timeutil.SameDay(other.Start, candidate.Start) {
			continue
		}

		otherStart, otherEnd := EffectiveWindow(other)
		if !candStart.Before(otherEnd) || !candEnd.After(otherStart) {
			continue
		}

		// Overlapping portion: latest start to earliest end.
		overlapStart := candStart
		if otherStart.After(overlapStart) {
			overlapStart = otherStart
		}
		overlapEnd := candEnd
		if otherEnd.Before(overlapEnd) {
			overlapEnd = otherEnd
		}

		conflicts = append(conflicts, Conflict{
			Event:        other,
			OverlapStart: overlapStart,
			OverlapEnd:   overlapEnd,
		})
	}

	return conflicts
}
