package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ytget/playlist-demo/internal/download"
)

// ErrTooManySessions is returned when the registry is full.
var ErrTooManySessions = errors.New("too many sessions")

// SessionFactory builds the session for a new id.
type SessionFactory func(id string) *download.Session

// Registry owns every live session of the server.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*download.Session
	max      int
	factory  SessionFactory
	onRemove func(id string)
}

// NewRegistry creates a registry holding at most max sessions.
func NewRegistry(max int, factory SessionFactory) *Registry {
	return &Registry{
		sessions: make(map[string]*download.Session),
		max:      max,
		factory:  factory,
	}
}

// OnRemove registers a hook run after a session is closed.
func (r *Registry) OnRemove(fn func(id string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onRemove = fn
}

// Create starts a new session under a fresh uuid.
func (r *Registry) Create() (*download.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.sessions) >= r.max {
		return nil, ErrTooManySessions
	}
	id := uuid.New().String()
	session := r.factory(id)
	r.sessions[id] = session
	return session, nil
}

// Get returns the session for id.
func (r *Registry) Get(id string) (*download.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	return session, ok
}

// Remove closes and forgets the session for id.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	session, ok := r.sessions[id]
	delete(r.sessions, id)
	onRemove := r.onRemove
	r.mu.Unlock()

	if !ok {
		return false
	}
	session.Close()
	if onRemove != nil {
		onRemove(id)
	}
	return true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CleanupIdle removes sessions untouched for longer than ttl that are not
// downloading, returning their ids.
func (r *Registry) CleanupIdle(now time.Time, ttl time.Duration) []string {
	r.mu.RLock()
	var idle []string
	for id, session := range r.sessions {
		if !session.IsDownloading() && now.Sub(session.LastActive()) > ttl {
			idle = append(idle, id)
		}
	}
	r.mu.RUnlock()

	for _, id := range idle {
		r.Remove(id)
	}
	return idle
}

// CloseAll closes every session.
func (r *Registry) CloseAll() {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	for _, id := range ids {
		r.Remove(id)
	}
}
