package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vendrom/calendar-backend/internal/api/middleware"
	"github.com/vendrom/calendar-backend/internal/event"
	"github.com/vendrom/calendar-backend/internal/integration"
	ws "github.com/vendrom/calendar-backend/internal/websocket"
)

// ListIntegrations returns every provider and its connection state.
func ListIntegrations(reg *integration.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, reg.List())
	}
}

// ConnectIntegration transitions a provider to Connected.
func ConnectIntegration(reg *integration.Registry, broadcaster *ws.Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		p, ok := reg.Connect(id)
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Integration not found")
			return
		}

		if broadcaster != nil {
			broadcaster.IntegrationChanged(p)
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// DisconnectIntegration transitions a provider to Disconnected.
func DisconnectIntegration(reg *integration.Registry, broadcaster *ws.Broadcaster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		p, ok := reg.Disconnect(id)
		if !ok {
			middleware.WriteError(w, http.StatusNotFound, middleware.ErrNotFound, "Integration not found")
			return
		}

		if broadcaster != nil {
			broadcaster.IntegrationChanged(p)
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// FeedEvents returns the read-only events surfaced by connected providers.
func FeedEvents(reg *integration.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events := reg.SurfacedEvents()
		if events == nil {
			events = []event.CalendarEvent{}
		}
		writeJSON(w, http.StatusOK, events)
	}
}
