package agenda

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vendrom/calendar-backend/internal/event"
)

// Publisher receives recomputed upcoming lists for live push.
type Publisher interface {
	AgendaRefreshed([]event.CalendarEvent)
}

// Refresher periodically recomputes the upcoming list and pushes it to
// connected clients, so dashboard side panels stay current as events slide
// into the past without any user action.
type Refresher struct {
	cron    *cron.Cron
	queries *Queries
	pub     Publisher
	limit   int
	every   time.Duration
	entry   cron.EntryID
}

// NewRefresher creates a refresher broadcasting the first limit upcoming
// events every interval. Intervals under a minute are raised to a minute.
func NewRefresher(queries *Queries, pub Publisher, limit int, every time.Duration) *Refresher {
	if every < time.Minute {
		every = time.Minute
	}
	return &Refresher{
		cron:    cron.New(),
		queries: queries,
		pub:     pub,
		limit:   limit,
		every:   every,
	}
}

// Start begins the periodic refresh job.
func (r *Refresher) Start() error {
	spec := fmt.Sprintf("@every %s", r.every)
	entry, err := r.cron.AddFunc(spec, r.refresh)
	if err != nil {
		return fmt.Errorf("scheduling agenda refresh: %w", err)
	}
	r.entry = entry

	r.cron.Start()
	log.Printf("Agenda refresher started (every %s, limit %d)", r.every, r.limit)
	return nil
}

// Stop shuts the refresher down, waiting for a running job to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	log.Println("Agenda refresher stopped")
}

// NextRun returns the next scheduled refresh time, or nil before Start.
func (r *Refresher) NextRun() *time.Time {
	entry := r.cron.Entry(r.entry)
	if entry.Next.IsZero() {
		return nil
	}
	next := entry.Next
	return &next
}

func (r *Refresher) refresh() {
	if r.pub == nil {
		return
	}
	r.pub.AgendaRefreshed(r.queries.Upcoming(r.limit))
}
