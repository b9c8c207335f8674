package session

import (
	"sync"
	"time"
)

// DefaultID is used when a request carries no explicit session id.
const DefaultID = "default"

// Session remembers one validated credential/model pair under a
// caller-chosen id. It lives for the process lifetime; there is no
// expiry despite the recorded creation time.
type Session struct {
	ID        string
	APIKey    string
	Model     string
	CreatedAt time.Time
}

// Registry is a concurrency-safe map of session id → Session.
// Put overwrites: for concurrent setups of the same id, the last
// write wins.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]Session)}
}

func (r *Registry) Put(id, apiKey, model string) Session {
	s := Session{
		ID:        id,
		APIKey:    apiKey,
		Model:     model,
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count reports the number of distinct session ids currently stored.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
