package repository

import (
	"sync"
	"time"

	"atvtours/internal/modules/booking"
)

// SessionRegistry holds live checkout sessions keyed by session id. Sessions
// are exclusively owned, in-process state and are deliberately not persisted;
// abandoned ones are reaped after a TTL.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*booking.Session
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*booking.Session)}
}

func (r *SessionRegistry) Put(s *booking.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
}

func (r *SessionRegistry) Get(id string) (*booking.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, booking.ErrSessionNotFound
	}
	return s, nil
}

func (r *SessionRegistry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// ReapExpired abandons and removes sessions idle for longer than ttl.
// Abandoning first bumps the generation, so a payment resolution still in
// flight for a reaped session is discarded when it lands.
func (r *SessionRegistry) ReapExpired(ttl time.Duration, now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	reaped := 0
	for id, s := range r.sessions {
		if now.Sub(s.UpdatedAt()) < ttl {
			continue
		}
		_ = s.Abandon()
		delete(r.sessions, id)
		reaped++
	}
	return reaped
}
