// Package main is the entry point for the Vendrom calendar backend.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vendrom/calendar-backend/internal/agenda"
	"github.com/vendrom/calendar-backend/internal/api"
	"github.com/vendrom/calendar-backend/internal/config"
	"github.com/vendrom/calendar-backend/internal/event"
	"github.com/vendrom/calendar-backend/internal/integration"
	"github.com/vendrom/calendar-backend/internal/nav"
	"github.com/vendrom/calendar-backend/internal/notice"
	"github.com/vendrom/calendar-backend/internal/timeutil"
	"github.com/vendrom/calendar-backend/internal/websocket"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
// Defaults to "dev" when not provided.
var version = "dev"

func main() {
	envFile := flag.String("env", "", "Optional .env file to load")
	healthCheck := flag.Bool("health-check", false, "Run health check and exit")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Health check mode for Docker HEALTHCHECK
	if *healthCheck {
		if err := runHealthCheck(cfg.Addr); err != nil {
			log.Fatalf("Health check failed: %v", err)
		}
		os.Exit(0)
	}

	if envVer := os.Getenv("VERSION"); envVer != "" {
		version = envVer
	}

	log.Printf("Starting Vendrom calendar backend (version: %s)...", version)

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()
	broadcaster := websocket.NewBroadcaster(hub)

	// Initialize the calendar engine
	store := event.NewStore()
	detector := event.NewDetector(store)
	mailbox := notice.NewMailbox()
	controller := nav.NewController()
	mutations := event.NewService(store, detector, mailbox, controller, broadcaster)
	queries := agenda.NewQueries(store)

	// Known providers; real sync transport lives behind the feed seam.
	registry := integration.NewRegistry(demoFeed(),
		integration.Provider{ID: "google", Name: "Google Calendar"},
		integration.Provider{ID: "outlook", Name: "Outlook Calendar"},
		integration.Provider{ID: "apple", Name: "Apple Calendar"},
	)

	// Periodic upcoming-list push for dashboard side panels
	refresher := agenda.NewRefresher(queries, broadcaster, cfg.UpcomingLimit,
		time.Duration(cfg.RefreshIntervalMin)*time.Minute)
	if err := refresher.Start(); err != nil {
		log.Printf("Warning: Failed to start agenda refresher: %v", err)
	}

	router := api.NewRouter(api.Services{
		Store:       store,
		Mutations:   mutations,
		Detector:    detector,
		Nav:         controller,
		Agenda:      queries,
		Registry:    registry,
		Notices:     mailbox,
		Hub:         hub,
		Broadcaster: broadcaster,
		Refresher:   refresher,
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		log.Printf("Server listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	refresher.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// demoFeed builds the in-memory stand-in for the external aggregator so
// adopt flows are exercisable without a real provider transport.
func demoFeed() integration.StaticFeed {
	tomorrow := timeutil.Midnight(time.Now()).AddDate(0, 0, 1)
	standup := tomorrow.Add(9 * time.Hour)
	standupEnd := standup.Add(30 * time.Minute)
	review := tomorrow.AddDate(0, 0, 2).Add(14 * time.Hour)

	return integration.StaticFeed{
		"google": {
			{
				ID:        "feed-google-1",
				Title:     "Team standup",
				Start:     standup,
				End:       &standupEnd,
				TimeLabel: timeutil.Label(standup, &standupEnd, false),
				Type:      event.TypeMeeting,
				Source:    "google",
				Details:   event.MeetingDetails{Mode: event.ModeVirtual, Link: "https://meet.example.com/standup"},
			},
			{
				ID:        "feed-google-2",
				Title:     "Quarterly review",
				Start:     review,
				TimeLabel: timeutil.Label(review, nil, false),
				Type:      event.TypeEvent,
				Source:    "google",
				Details:   event.PlainDetails{Location: "HQ, Room 4"},
			},
		},
	}
}

// runHealthCheck performs a health check against the running server.
func runHealthCheck(addr string) error {
	url := "http://localhost" + addr + "/api/health"
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return http.ErrAbortHandler
	}
	return nil
}
