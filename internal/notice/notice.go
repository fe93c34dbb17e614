// Package notice holds the one-slot mailbox for ephemeral user-facing
// notices. A notice has no lifecycle beyond "shown once": it is replaced by
// the next notice or cleared when the user dismisses it, and is never part
// of durable state.
package notice

import "sync"

// Tone classifies a notice for presentation.
type Tone string

// Notice tones.
const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneInfo    Tone = "info"
)

// Notice is a single user-facing message.
type Notice struct {
	Tone    Tone   `json:"tone"`
	Message string `json:"message"`
}

// Mailbox stores at most one pending notice.
type Mailbox struct {
	mu      sync.Mutex
	current *Notice
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Post replaces any pending notice with the given one.
func (m *Mailbox) Post(n Notice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &n
}

// Current returns the pending notice, if any, without clearing it.
func (m *Mailbox) Current() (Notice, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return Notice{}, false
	}
	return *m.current, true
}

// Dismiss clears the pending notice.
func (m *Mailbox) Dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}
