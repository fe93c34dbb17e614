package websocket

import (
	"encoding/json"
	"time"

	"github.com/vendrom/calendar-backend/internal/event"
	"github.com/vendrom/calendar-backend/internal/integration"
	"github.com/vendrom/calendar-backend/internal/notice"
)

// MessageType identifies the type of WebSocket message.
type MessageType string

const (
	// Server -> Client event types
	TypeEventCreated       MessageType = "event.created"
	TypeEventUpdated       MessageType = "event.updated"
	TypeEventAdopted       MessageType = "event.adopted"
	TypeConflictDetected   MessageType = "event.conflict_detected"
	TypeIntegrationChanged MessageType = "integration.status_changed"
	TypeAgendaRefresh      MessageType = "agenda.refresh"
	TypeNotification       MessageType = "notification"

	// Client -> Server command types
	TypePing MessageType = "ping"

	// Server -> Client response types
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"
)

// Message represents a WebSocket message envelope.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload"`
}

// NewMessage creates a new message with the current timestamp.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JSON serializes the message to JSON bytes.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// EventPayload is the payload for event.created and event.updated.
type EventPayload struct {
	Event event.CalendarEvent `json:"event"`
}

// AdoptedPayload is the payload for event.adopted. Conflicts carries the
// same-day events whose windows overlap the adopted one.
type AdoptedPayload struct {
	Event     event.CalendarEvent `json:"event"`
	Conflicts []event.Conflict    `json:"conflicts,omitempty"`
}

// ConflictPayload is the payload for event.conflict_detected.
type ConflictPayload struct {
	EventID   string           `json:"event_id"`
	Title     string           `json:"title"`
	Conflicts []event.Conflict `json:"conflicts"`
}

// IntegrationPayload is the payload for integration.status_changed.
type IntegrationPayload struct {
	Provider integration.Provider `json:"provider"`
}

// AgendaRefreshPayload is the payload for agenda.refresh: the recomputed
// upcoming list for dashboard side panels.
type AgendaRefreshPayload struct {
	Upcoming []event.CalendarEvent `json:"upcoming"`
}

// NotificationPayload is the payload for notification events, mirroring
// the one-slot notice mailbox.
type NotificationPayload struct {
	Tone        notice.Tone `json:"tone"`
	Message     string      `json:"message"`
	Dismissible bool        `json:"dismissible"`
}

// ErrorPayload is the payload for error messages.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
