package handlers

import (
	"net/http"
	"time"

	"github.com/vendrom/calendar-backend/internal/agenda"
	"github.com/vendrom/calendar-backend/internal/event"
	"github.com/vendrom/calendar-backend/internal/integration"
	ws "github.com/vendrom/calendar-backend/internal/websocket"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// HealthCheck returns a handler that performs a liveness check.
func HealthCheck() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
	}
}

// StatusResponse represents the system status response.
type StatusResponse struct {
	EventsCount        int        `json:"events_count"`
	ConnectedProviders int        `json:"connected_providers"`
	WebSocketClients   int        `json:"websocket_clients"`
	NextRefreshAt      *time.Time `json:"next_refresh_at,omitempty"`
}

// Status returns a handler that provides system status information.
func Status(store *event.Store, reg *integration.Registry, hub *ws.Hub, refresher *agenda.Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := StatusResponse{
			EventsCount:        store.Len(),
			ConnectedProviders: len(reg.ConnectedIDs()),
			WebSocketClients:   hub.ClientCount(),
		}
		if refresher != nil {
			response.NextRefreshAt = refresher.NextRun()
		}

		writeJSON(w, http.StatusOK, response)
	}
}
