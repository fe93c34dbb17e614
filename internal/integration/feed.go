package integration

import "github.com/vendrom/calendar-backend/internal/event"

// Feed is the inbound boundary to the external event aggregator: a
// read-only view of events surfaced by a provider. The engine never
// mutates a feed; acting on a surfaced event goes through the mutation
// service's adopt operation instead.
type Feed interface {
	// Events returns the events surfaced by one provider. Their Source
	// carries the provider tag, never the owning application's.
	Events(providerID string) []event.CalendarEvent
}

// StaticFeed is an in-memory Feed keyed by provider ID, used where no real
// aggregator transport is wired.
type StaticFeed map[string][]event.CalendarEvent

// Events returns the provider's surfaced events.
func (f StaticFeed) Events(providerID string) []event.CalendarEvent {
	events := f[providerID]
	out := make([]event.CalendarEvent, len(events))
	copy(out, events)
	return out
}

// SurfacedEvents returns the surfaced events of every connected provider,
// in connected-provider order. Disconnected providers surface nothing.
func (r *Registry) SurfacedEvents() []event.CalendarEvent {
	if r.feed == nil {
		return nil
	}

	var out []event.CalendarEvent
	for _, id := range r.ConnectedIDs() {
		out = append(out, r.feed.Events(id)...)
	}
	return out
}
