// Package integration tracks the per-provider connection state machine for
// external calendar integrations. A provider is either Connected or
// Disconnected, transitions only on user action, and carries last-sync
// bookkeeping. The actual synchronization transport lives behind the Feed
// seam and is out of scope here.
package integration

import (
	"sort"
	"sync"
)

// LastSyncJustNow is the sentinel shown immediately after connecting.
const LastSyncJustNow = "Just now"

// Provider is one external calendar integration and its connection state.
type Provider struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
	LastSync  string `json:"last_sync,omitempty"`
}

// Registry holds the connection state for all known providers.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]*Provider
	order     []string
	feed      Feed
}

// NewRegistry creates a registry for the given providers, all starting
// disconnected. feed may be nil when no aggregator is wired.
func NewRegistry(feed Feed, providers ...Provider) *Registry {
	r := &Registry{
		providers: make(map[string]*Provider, len(providers)),
		feed:      feed,
	}
	for _, p := range providers {
		p.Connected = false
		p.LastSync = ""
		cp := p
		r.providers[p.ID] = &cp
		r.order = append(r.order, p.ID)
	}
	return r
}

// List returns all providers in registration order.
func (r *Registry) List() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Provider, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.providers[id])
	}
	return out
}

// Get returns the provider with the given ID.
func (r *Registry) Get(id string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[id]
	if !ok {
		return Provider{}, false
	}
	return *p, true
}

// Connect transitions a provider to Connected and stamps its last sync.
// Connecting an already-connected provider is a no-op beyond refreshing
// the stamp.
func (r *Registry) Connect(id string) (Provider, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.providers[id]
	if !ok {
		return Provider{}, false
	}
	p.Connected = true
	p.LastSync = LastSyncJustNow
	return *p, true
}

// Disconnect transitions a provider to Disconnected and clears its last
// sync.
func (r *Registry) Disconnect(id string) (Provider, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.providers[id]
	if !ok {
		return Provider{}, false
	}
	p.Connected = false
	p.LastSync = ""
	return *p, true
}

// ConnectedIDs returns the IDs of currently connected providers, sorted
// for stable output.
func (r *Registry) ConnectedIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for id, p := range r.providers {
		if p.Connected {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
