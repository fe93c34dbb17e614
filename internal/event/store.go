package event

import (
	"sync"
	"time"

	"github.com/vendrom/calendar-backend/internal/timeutil"
)

// Store owns the canonical event collection and its derived per-day index.
// The index is recomputed lazily after every mutation, so readers never
// observe a stale grouping. Created events are prepended (the collection is
// newest-first); edits replace in place. No operation removes an event.
type Store struct {
	mu     sync.RWMutex
	events []CalendarEvent
	index  map[string][]CalendarEvent
	dirty  bool
}

// NewStore creates an event store seeded with the given events, preserving
// their order.
func NewStore(seed ...CalendarEvent) *Store {
	s := &Store{dirty: true}
	s.events = append(s.events, seed...)
	return s
}

// Upsert inserts a new event at the head of the collection, or replaces the
// existing event with the same ID in place. Either way the derived index is
// invalidated.
func (s *Store) Upsert(e CalendarEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].ID == e.ID {
			s.events[i] = e
			s.dirty = true
			return
		}
	}

	s.events = append([]CalendarEvent{e}, s.events...)
	s.dirty = true
}

// Get returns the event with the given ID.
func (s *Store) Get(id string) (CalendarEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.events {
		if e.ID == id {
			return e, true
		}
	}
	return CalendarEvent{}, false
}

// All returns a copy of the collection in its canonical (newest-first)
// order.
func (s *Store) All() []CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]CalendarEvent, len(s.events))
	copy(out, s.events)
	return out
}

// ByDay returns the events whose start falls on the same local day as the
// given date, in collection order.
func (s *Store) ByDay(date time.Time) []CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rebuildLocked()
	day := s.index[timeutil.DateKey(date)]
	out := make([]CalendarEvent, len(day))
	copy(out, day)
	return out
}

// Index returns the full derived date-key grouping. The returned map is a
// copy; mutating it does not affect the store.
func (s *Store) Index() map[string][]CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rebuildLocked()
	out := make(map[string][]CalendarEvent, len(s.index))
	for k, v := range s.index {
		day := make([]CalendarEvent, len(v))
		copy(day, v)
		out[k] = day
	}
	return out
}

// Len returns the number of events in the collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// rebuildLocked recomputes the date index if a mutation invalidated it.
// Callers must hold the write lock.
func (s *Store) rebuildLocked() {
	if !s.dirty {
		return
	}

	index := make(map[string][]CalendarEvent)
	for _, e := range s.events {
		key := e.DateKey()
		index[key] = append(index[key], e)
	}

	s.index = index
	s.dirty = false
}
