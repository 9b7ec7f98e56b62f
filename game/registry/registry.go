package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/masterbraila/BingoOnline/game/ticket"
)

// Participant is one connected player, keyed by its transport-level
// connection ID.
type Participant struct {
	ConnectionID string
	PlayerName   string
	Room         string
	JoinedAt     time.Time
}

// Registry is the participant and ticket store. It is safe for concurrent
// use.
type Registry struct {
	mu           sync.RWMutex
	participants map[string]*Participant
	tickets      map[string]*ticket.Ticket
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		participants: make(map[string]*Participant),
		tickets:      make(map[string]*ticket.Ticket),
	}
}

// Join upserts the participant for a connection. Re-joining replaces the
// stored name and room but keeps the original join time and any issued
// ticket.
func (r *Registry) Join(connID, room, playerName string) *Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, exists := r.participants[connID]; exists {
		p.PlayerName = playerName
		p.Room = room
		return p
	}

	p := &Participant{
		ConnectionID: connID,
		PlayerName:   playerName,
		Room:         room,
		JoinedAt:     time.Now(),
	}
	r.participants[connID] = p
	return p
}

// Leave removes the participant and its stored ticket. Unknown connection
// IDs are a no-op.
func (r *Registry) Leave(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.participants, connID)
	delete(r.tickets, connID)
}

// Get returns the participant for a connection, if present.
func (r *Registry) Get(connID string) (*Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.participants[connID]
	return p, ok
}

// List returns a snapshot of current participants ordered by join time.
func (r *Registry) List() []*Participant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Participant, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].ConnectionID < out[j].ConnectionID
		}
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out
}

// SetTicket associates a ticket with a participant, replacing any prior one.
// It reports false when the connection is not a current participant, in
// which case nothing is stored: the registry never holds tickets for absent
// connections.
func (r *Registry) SetTicket(connID string, t *ticket.Ticket) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.participants[connID]; !exists {
		return false
	}
	r.tickets[connID] = t
	return true
}

// GetTicket returns the most recent ticket issued to a connection. Absence
// is a normal result, not an error.
func (r *Registry) GetTicket(connID string) (*ticket.Ticket, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tickets[connID]
	return t, ok
}

// Count returns the number of current participants.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.participants)
}
