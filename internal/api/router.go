// Package api provides HTTP routing and handlers for the REST API.
package api

import (
	"github.com/gorilla/mux"

	"github.com/vendrom/calendar-backend/internal/agenda"
	"github.com/vendrom/calendar-backend/internal/api/handlers"
	"github.com/vendrom/calendar-backend/internal/api/middleware"
	"github.com/vendrom/calendar-backend/internal/event"
	"github.com/vendrom/calendar-backend/internal/integration"
	"github.com/vendrom/calendar-backend/internal/nav"
	"github.com/vendrom/calendar-backend/internal/notice"
	"github.com/vendrom/calendar-backend/internal/websocket"
)

// Services bundles the calendar engine components the router exposes.
type Services struct {
	Store       *event.Store
	Mutations   *event.Service
	Detector    *event.Detector
	Nav         *nav.Controller
	Agenda      *agenda.Queries
	Registry    *integration.Registry
	Notices     *notice.Mailbox
	Hub         *websocket.Hub
	Broadcaster *websocket.Broadcaster
	Refresher   *agenda.Refresher
}

// NewRouter creates and configures the HTTP router with all API routes.
func NewRouter(s Services) *mux.Router {
	r := mux.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logging)
	r.Use(middleware.ErrorRecovery)

	// API subrouter
	api := r.PathPrefix("/api").Subrouter()

	// Health and status endpoints
	api.HandleFunc("/health", handlers.HealthCheck()).Methods("GET")
	api.HandleFunc("/status", handlers.Status(s.Store, s.Registry, s.Hub, s.Refresher)).Methods("GET")

	// WebSocket endpoint
	api.HandleFunc("/ws", handlers.WebSocketUpgrade(s.Hub)).Methods("GET")

	// Event endpoints
	api.HandleFunc("/events", handlers.ListEvents(s.Store)).Methods("GET")
	api.HandleFunc("/events", handlers.CreateEvent(s.Mutations)).Methods("POST")
	api.HandleFunc("/events/adopt", handlers.AdoptEvent(s.Mutations)).Methods("POST")
	api.HandleFunc("/events/{id}", handlers.UpdateEvent(s.Store, s.Mutations)).Methods("PUT")
	api.HandleFunc("/events/{id}/conflicts", handlers.EventConflicts(s.Store, s.Detector)).Methods("GET")

	// Agenda endpoints
	api.HandleFunc("/agenda", handlers.DayAgenda(s.Agenda, s.Nav)).Methods("GET")
	api.HandleFunc("/agenda/upcoming", handlers.Upcoming(s.Agenda)).Methods("GET")
	api.HandleFunc("/agenda/cells", handlers.MonthCell(s.Agenda)).Methods("GET")

	// Navigation endpoints
	api.HandleFunc("/navigation", handlers.GetNavigation(s.Nav)).Methods("GET")
	api.HandleFunc("/navigation/today", handlers.NavToday(s.Nav)).Methods("POST")
	api.HandleFunc("/navigation/step", handlers.NavStep(s.Nav)).Methods("POST")
	api.HandleFunc("/navigation/view", handlers.NavSetView(s.Nav)).Methods("POST")
	api.HandleFunc("/navigation/select", handlers.NavSelectDate(s.Nav)).Methods("POST")
	api.HandleFunc("/navigation/month", handlers.NavSelectMonth(s.Nav)).Methods("POST")
	api.HandleFunc("/navigation/year", handlers.NavSelectYear(s.Nav)).Methods("POST")
	api.HandleFunc("/navigation/open-month", handlers.NavOpenMonth(s.Nav)).Methods("POST")

	// Integration endpoints
	api.HandleFunc("/integrations", handlers.ListIntegrations(s.Registry)).Methods("GET")
	api.HandleFunc("/integrations/{id}/connect", handlers.ConnectIntegration(s.Registry, s.Broadcaster)).Methods("POST")
	api.HandleFunc("/integrations/{id}/disconnect", handlers.DisconnectIntegration(s.Registry, s.Broadcaster)).Methods("POST")

	// External feed (read-only)
	api.HandleFunc("/feed", handlers.FeedEvents(s.Registry)).Methods("GET")

	// Notice mailbox
	api.HandleFunc("/notice", handlers.GetNotice(s.Notices)).Methods("GET")
	api.HandleFunc("/notice", handlers.DismissNotice(s.Notices)).Methods("DELETE")

	return r
}
