package websocket

import (
	"log"

	"github.com/vendrom/calendar-backend/internal/event"
	"github.com/vendrom/calendar-backend/internal/integration"
	"github.com/vendrom/calendar-backend/internal/notice"
)

// Broadcaster handles broadcasting typed calendar events over the hub. It
// implements the publisher seams of the event and agenda packages.
type Broadcaster struct {
	hub *Hub
}

// NewBroadcaster creates a broadcaster over the given hub.
func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// EventCreated announces a newly created event.
func (b *Broadcaster) EventCreated(e event.CalendarEvent) {
	b.broadcast(NewMessage(TypeEventCreated, EventPayload{Event: e}))
}

// EventUpdated announces an edited event.
func (b *Broadcaster) EventUpdated(e event.CalendarEvent) {
	b.broadcast(NewMessage(TypeEventUpdated, EventPayload{Event: e}))
}

// EventAdopted announces an externally sourced event cloned into the
// user's calendar, along with any scheduling conflicts it landed on.
func (b *Broadcaster) EventAdopted(e event.CalendarEvent, conflicts []event.Conflict) {
	b.broadcast(NewMessage(TypeEventAdopted, AdoptedPayload{Event: e, Conflicts: conflicts}))

	if len(conflicts) > 0 {
		b.broadcast(NewMessage(TypeConflictDetected, ConflictPayload{
			EventID:   e.ID,
			Title:     e.Title,
			Conflicts: conflicts,
		}))
	}
}

// IntegrationChanged announces a provider connect or disconnect.
func (b *Broadcaster) IntegrationChanged(p integration.Provider) {
	b.broadcast(NewMessage(TypeIntegrationChanged, IntegrationPayload{Provider: p}))
}

// AgendaRefreshed pushes the recomputed upcoming list.
func (b *Broadcaster) AgendaRefreshed(upcoming []event.CalendarEvent) {
	b.broadcast(NewMessage(TypeAgendaRefresh, AgendaRefreshPayload{Upcoming: upcoming}))
}

// NoticePosted mirrors a mailbox notice to connected clients.
func (b *Broadcaster) NoticePosted(n notice.Notice) {
	b.broadcast(NewMessage(TypeNotification, NotificationPayload{
		Tone:        n.Tone,
		Message:     n.Message,
		Dismissible: true,
	}))
}

// broadcast sends a message to all connected clients.
func (b *Broadcaster) broadcast(msg Message) {
	data, err := msg.JSON()
	if err != nil {
		log.Printf("Error encoding WebSocket message: %v", err)
		return
	}

	b.hub.Broadcast(data)
}
