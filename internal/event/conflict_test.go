package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timed(id string, start, end time.Time) CalendarEvent {
	e := stored(id, start)
	e.End = &end
	return e
}

func TestEffectiveWindowDefaultsToSixtyMinutes(t *testing.T) {
	e := stored("a", dayAt(10, 9))
	start, end := EffectiveWindow(e)

	assert.Equal(t, e.Start, start)
	assert.Equal(t, e.Start.Add(60*time.Minute), end)

	explicit := timed("b", dayAt(10, 9), dayAt(10, 11))
	_, end = EffectiveWindow(explicit)
	assert.Equal(t, dayAt(10, 11), end)
}

func TestFindConflictsOverlap(t *testing.T) {
	s := NewStore()
	s.Upsert(timed("existing", dayAt(10, 9), dayAt(10, 10)))
	d := NewDetector(s)

	candidate := timed("candidate", dayAt(10, 9).Add(30*time.Minute), dayAt(10, 10).Add(30*time.Minute))
	conflicts := d.FindConflicts(candidate)

	require.Len(t, conflicts, 1)
	assert.Equal(t, "existing", conflicts[0].Event.ID)
	assert.Equal(t, dayAt(10, 9).Add(30*time.Minute), conflicts[0].OverlapStart)
	assert.Equal(t, dayAt(10, 10), conflicts[0].OverlapEnd)
}

func TestFindConflictsSymmetry(t *testing.T) {
	a := timed("a", dayAt(10, 9), dayAt(10, 10))
	b := timed("b", dayAt(10, 9).Add(45*time.Minute), dayAt(10, 11))

	s := NewStore()
	s.Upsert(a)
	s.Upsert(b)
	d := NewDetector(s)

	aHitsB := false
	for _, c := range d.FindConflicts(a) {
		if c.Event.ID == "b" {
			aHitsB = true
		}
	}
	bHitsA := false
	for _, c := range d.FindConflicts(b) {
		if c.Event.ID == "a" {
			bHitsA = true
		}
	}

	assert.Equal(t, aHitsB, bHitsA)
	assert.True(t, aHitsB)
}

func TestFindConflictsExcludesSelf(t *testing.T) {
	e := timed("self", dayAt(10, 9), dayAt(10, 10))
	s := NewStore()
	s.Upsert(e)
	d := NewDetector(s)

	assert.Empty(t, d.FindConflicts(e))
}

func TestFindConflictsBoundaryTouchIsNotConflict(t *testing.T) {
	s := NewStore()
	s.Upsert(timed("first", dayAt(10, 9), dayAt(10, 10)))
	d := NewDetector(s)

	backToBack := timed("second", dayAt(10, 10), dayAt(10, 11))
	assert.Empty(t, d.FindConflicts(backToBack))
}

func TestFindConflictsDefaultDurationBehavior(t *testing.T) {
	s := NewStore()
	// 9:00 with no end behaves as 9:00-10:00.
	s.Upsert(stored("open", dayAt(10, 9)))
	d := NewDetector(s)

	inside := timed("inside", dayAt(10, 9).Add(30*time.Minute), dayAt(10, 9).Add(45*time.Minute))
	assert.Len(t, d.FindConflicts(inside), 1)

	after := timed("after", dayAt(10, 10).Add(15*time.Minute), dayAt(10, 10).Add(45*time.Minute))
	assert.Empty(t, d.FindConflicts(after))
}

func TestFindConflictsIgnoresOtherDays(t *testing.T) {
	s := NewStore()
	s.Upsert(timed("tomorrow", dayAt(11, 9), dayAt(11, 10)))
	d := NewDetector(s)

	candidate := timed("today", dayAt(10, 9), dayAt(10, 10))
	assert.Empty(t, d.FindConflicts(candidate))
}
